package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/desertthunder/tunelink/internal/tasks"
	"golang.org/x/time/rate"
)

// fakeConverter returns a canned result or error.
type fakeConverter struct {
	result *tasks.ConversionResult
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, _ chan<- tasks.ProgressUpdate, rawURL string) (*tasks.ConversionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func trackResult() *tasks.ConversionResult {
	return &tasks.ConversionResult{
		Kind: services.KindTrack,
		Source: &models.Track{
			ID:       "3135556",
			Title:    "Harder, Better, Faster, Stronger",
			Artists:  []string{"Daft Punk"},
			Platform: models.PlatformDeezer,
		},
		Targets: []tasks.TargetOutcome{
			{
				Platform:    models.PlatformSpotify,
				ServiceName: "Spotify",
				Links:       []models.Track{{Title: "Harder, Better, Faster, Stronger", Link: true, Quality: models.QualityHigh}},
			},
			{
				Platform:    models.PlatformYouTube,
				ServiceName: "YouTube Music",
			},
		},
	}
}

func TestConvertHandler(t *testing.T) {
	t.Run("Successful Conversion", func(t *testing.T) {
		router := New(&fakeConverter{result: trackResult()}, nil, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/convert?url=https://www.deezer.com/track/3135556", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}

		var resp convertResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Kind != "track" {
			t.Errorf("expected track kind, got %q", resp.Kind)
		}
		if len(resp.Targets) != 2 {
			t.Fatalf("expected 2 targets, got %d", len(resp.Targets))
		}
	})

	t.Run("Empty Matches Serialize As Arrays", func(t *testing.T) {
		router := New(&fakeConverter{result: trackResult()}, nil, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/convert?url=https://www.deezer.com/track/3135556", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if strings.Contains(rec.Body.String(), `"matches":null`) || strings.Contains(rec.Body.String(), `"links":null`) {
			t.Errorf("expected empty arrays, got %s", rec.Body.String())
		}
	})

	t.Run("Missing URL Parameter", func(t *testing.T) {
		router := New(&fakeConverter{result: trackResult()}, nil, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/convert", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Unrecognized Link", func(t *testing.T) {
		converter := &fakeConverter{err: fmt.Errorf("%w: soundcloud.com", shared.ErrUnrecognizedLink)}
		router := New(converter, nil, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/convert?url=https://soundcloud.com/x", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode error: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected error message in body")
		}
	})

	t.Run("Source Not Found", func(t *testing.T) {
		converter := &fakeConverter{err: fmt.Errorf("resolving track: %w", shared.ErrNotFound)}
		router := New(converter, nil, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/convert?url=https://www.deezer.com/track/0", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Upstream Timeout", func(t *testing.T) {
		converter := &fakeConverter{err: fmt.Errorf("deezer: %w", shared.ErrTimeout)}
		router := New(converter, nil, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/convert?url=https://www.deezer.com/track/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusGatewayTimeout {
			t.Errorf("expected 504, got %d", rec.Code)
		}
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		router := New(&fakeConverter{result: trackResult()}, nil, 0)

		req := httptest.NewRequest(http.MethodPost, "/api/convert?url=x", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	router := New(&fakeConverter{}, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimit(rate.NewLimiter(rate.Limit(0), 2))(handler)

	statuses := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request limited, got %v", statuses)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	router := NewBasicRouter()

	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	router.Use(mk("first"), mk("second"))
	router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected middleware order: %v", order)
	}
}
