package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/desertthunder/tunelink/internal/tasks"
)

// Converter is the conversion dependency of ConvertHandler. Satisfied by
// tasks.ConvertEngine; abstracted for handler tests.
type Converter interface {
	Convert(ctx context.Context, progress chan<- tasks.ProgressUpdate, rawURL string) (*tasks.ConversionResult, error)
}

// ConvertHandler serves GET /api/convert?url={link}.
type ConvertHandler struct {
	converter Converter
	logger    *log.Logger
}

// NewConvertHandler creates a ConvertHandler over the given converter.
func NewConvertHandler(converter Converter, logger *log.Logger) *ConvertHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ConvertHandler{converter: converter, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ConvertHandler) Routes() []string {
	return []string{"GET /api/convert"}
}

type convertResponse struct {
	Kind    string          `json:"kind"`
	Source  any             `json:"source"`
	Targets []targetPayload `json:"targets"`
}

type targetPayload struct {
	Platform string `json:"platform"`
	Service  string `json:"service"`
	Matches  any    `json:"matches"`
	Links    any    `json:"links"`
	Error    string `json:"error,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ServeHTTP handles the conversion request.
//
// A conversion with zero matches is still a 200; only a missing or
// unrecognized url, an unresolvable source, or an upstream failure is an
// error status.
func (h *ConvertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		h.writeError(w, r, http.StatusBadRequest, "missing url query parameter")
		return
	}

	result, err := h.converter.Convert(r.Context(), nil, rawURL)
	if err != nil {
		h.logger.Warn("conversion failed", "url", rawURL, "error", err, "request_id", RequestIDFrom(r.Context()))
		h.writeError(w, r, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(result))
}

func (h *ConvertHandler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message, RequestID: RequestIDFrom(r.Context())})
}

// statusFor maps conversion errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnrecognizedLink), errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// buildResponse flattens a ConversionResult into the wire shape. Slices are
// always present so clients never see null where an array belongs.
func buildResponse(result *tasks.ConversionResult) convertResponse {
	resp := convertResponse{
		Kind:    string(result.Kind),
		Targets: make([]targetPayload, 0, len(result.Targets)),
	}

	if result.Source != nil {
		resp.Source = result.Source
	} else {
		resp.Source = result.SourceAlbum
	}

	for _, target := range result.Targets {
		payload := targetPayload{Platform: target.Platform, Service: target.ServiceName}
		if target.Err != nil {
			payload.Error = target.Err.Error()
		}

		if result.Kind == services.KindAlbum {
			payload.Matches = nonNilAlbums(target.AlbumMatches)
			payload.Links = nonNilAlbums(target.AlbumLinks)
		} else {
			payload.Matches = nonNilTracks(target.Matches)
			payload.Links = nonNilTracks(target.Links)
		}

		resp.Targets = append(resp.Targets, payload)
	}

	return resp
}

func nonNilTracks(tracks []models.Track) []models.Track {
	if tracks == nil {
		return []models.Track{}
	}
	return tracks
}

func nonNilAlbums(albums []models.Album) []models.Album {
	if albums == nil {
		return []models.Album{}
	}
	return albums
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// HealthHandler serves GET /health for liveness checks.
type HealthHandler struct{}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"GET /health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
