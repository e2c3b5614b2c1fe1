// Deezer API [Service] implementation
//
// Talks to the public, unauthenticated api.deezer.com endpoints. Deezer is
// the only platform in this design with a programmatic search, so it is the
// one adapter the match engine actually queries.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultDeezerBaseURL   = "https://api.deezer.com"
	defaultDeezerRateLimit = 5.0
	deezerWebURL           = "https://www.deezer.com"
)

// deezerArtist is an artist object embedded in Deezer responses.
type deezerArtist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// deezerAlbumRef is the compact album object embedded in track responses.
type deezerAlbumRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Cover       string `json:"cover"`
	CoverMedium string `json:"cover_medium"`
}

// deezerTrack is a track entry from search or /track/{id}.
type deezerTrack struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Link         string          `json:"link"`
	Duration     int             `json:"duration"`
	Artist       *deezerArtist   `json:"artist"`
	Contributors []deezerArtist  `json:"contributors,omitempty"`
	Album        *deezerAlbumRef `json:"album"`
}

// deezerAlbum is an album entry from search or /album/{id}.
type deezerAlbum struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Link        string        `json:"link"`
	Cover       string        `json:"cover"`
	CoverMedium string        `json:"cover_medium"`
	NbTracks    int           `json:"nb_tracks"`
	Artist      *deezerArtist `json:"artist"`
}

// deezerError is the error envelope Deezer returns with HTTP 200.
type deezerError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DeezerService implements the Service interface for Deezer's public API.
type DeezerService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewDeezerService creates a Deezer service instance.
//
// An empty baseURL falls back to api.deezer.com; a non-positive rps falls
// back to 5 requests per second, comfortably under Deezer's 50-per-5s quota.
func NewDeezerService(baseURL string, rps float64) *DeezerService {
	if baseURL == "" {
		baseURL = defaultDeezerBaseURL
	}
	if rps <= 0 {
		rps = defaultDeezerRateLimit
	}

	return &DeezerService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the service display name.
func (d *DeezerService) Name() string { return "Deezer" }

// ID returns the platform identifier.
func (d *DeezerService) ID() string { return models.PlatformDeezer }

// Searchable reports that Deezer has a public search API.
func (d *DeezerService) Searchable() bool { return true }

func (d *DeezerService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", shared.ErrTimeout, err)
	}

	apiURL := d.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrUnknown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: deezer API status %d", deezerStatusErr(resp.StatusCode), resp.StatusCode)
	}

	// Deezer signals failures with HTTP 200 and an error envelope, so the
	// body has to be inspected before the real decode.
	var envelope struct {
		Error *deezerError `json:"error"`
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		return fmt.Errorf("%w: deezer %s (code %d)", deezerCodeErr(envelope.Error.Code), envelope.Error.Type, envelope.Error.Code)
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// deezerCodeErr folds a Deezer error code into the closed transport-error set.
func deezerCodeErr(code int) error {
	switch code {
	case 800: // DataException: no data
		return shared.ErrNotFound
	case 200, 300: // PermissionException, InvalidTokenException
		return shared.ErrAccessDenied
	case 4, 700: // QuotaException, ServiceBusyException
		return shared.ErrTimeout
	default:
		return shared.ErrUnknown
	}
}

func deezerStatusErr(status int) error {
	switch status {
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return shared.ErrAccessDenied
	case http.StatusTooManyRequests, http.StatusGatewayTimeout:
		return shared.ErrTimeout
	default:
		return shared.ErrUnknown
	}
}

// SearchTracks queries GET /search with the given query.
func (d *DeezerService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(capLimit(limit))},
	}

	var resp struct {
		Data []deezerTrack `json:"data"`
	}
	if err := d.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(resp.Data))
	for _, dt := range resp.Data {
		tracks = append(tracks, d.trackFromAPI(dt))
	}
	return tracks, nil
}

// SearchAlbums queries GET /search/album with the given query.
func (d *DeezerService) SearchAlbums(ctx context.Context, query string, limit int) ([]models.Album, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(capLimit(limit))},
	}

	var resp struct {
		Data []deezerAlbum `json:"data"`
	}
	if err := d.doRequest(ctx, "/search/album?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(resp.Data))
	for _, da := range resp.Data {
		albums = append(albums, d.albumFromAPI(da))
	}
	return albums, nil
}

// LookupTrack fetches GET /track/{id}.
func (d *DeezerService) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	var dt deezerTrack
	if err := d.doRequest(ctx, "/track/"+url.PathEscape(id), &dt); err != nil {
		return nil, err
	}

	track := d.trackFromAPI(dt)
	return &track, nil
}

// LookupAlbum fetches GET /album/{id}.
func (d *DeezerService) LookupAlbum(ctx context.Context, id string) (*models.Album, error) {
	var da deezerAlbum
	if err := d.doRequest(ctx, "/album/"+url.PathEscape(id), &da); err != nil {
		return nil, err
	}

	album := d.albumFromAPI(da)
	return &album, nil
}

// TrackSearchLinks builds Deezer web-search fallback links. Deezer is
// searchable, so these only surface when the scored search found nothing.
func (d *DeezerService) TrackSearchLinks(src models.Track) []models.Track {
	artist, title := src.PrimaryArtist(), strings.TrimSpace(src.Title)
	query := strings.TrimSpace(artist + " " + title)
	if query == "" {
		return nil
	}

	return []models.Track{{
		Title:    title,
		Artists:  src.Artists,
		Platform: models.PlatformDeezer,
		URL:      deezerWebURL + "/search/" + url.PathEscape(query),
		Link:     true,
		Quality:  linkQuality(artist, title),
	}}
}

// AlbumSearchLinks builds Deezer album web-search fallback links.
func (d *DeezerService) AlbumSearchLinks(src models.Album) []models.Album {
	artist, title := src.PrimaryArtist(), strings.TrimSpace(src.Title)
	query := strings.TrimSpace(artist + " " + title)
	if query == "" {
		return nil
	}

	return []models.Album{{
		Title:    title,
		Artists:  src.Artists,
		Platform: models.PlatformDeezer,
		URL:      deezerWebURL + "/search/" + url.PathEscape(query) + "/album",
		Link:     true,
		Quality:  linkQuality(artist, title),
	}}
}

func (d *DeezerService) trackFromAPI(dt deezerTrack) models.Track {
	track := models.Track{
		ID:       strconv.FormatInt(dt.ID, 10),
		Title:    dt.Title,
		Duration: dt.Duration,
		Platform: models.PlatformDeezer,
		URL:      dt.Link,
	}

	if dt.Artist != nil && dt.Artist.Name != "" {
		track.Artists = append(track.Artists, dt.Artist.Name)
	}
	for _, c := range dt.Contributors {
		if dt.Artist != nil && c.ID == dt.Artist.ID {
			continue
		}
		if c.Name != "" {
			track.Artists = append(track.Artists, c.Name)
		}
	}

	if dt.Album != nil {
		if dt.Album.CoverMedium != "" {
			track.CoverURL = dt.Album.CoverMedium
		} else {
			track.CoverURL = dt.Album.Cover
		}
	}

	if track.URL == "" && dt.ID != 0 {
		track.URL = fmt.Sprintf("%s/track/%d", deezerWebURL, dt.ID)
	}

	return track
}

func (d *DeezerService) albumFromAPI(da deezerAlbum) models.Album {
	album := models.Album{
		ID:         strconv.FormatInt(da.ID, 10),
		Title:      da.Title,
		TrackCount: da.NbTracks,
		Platform:   models.PlatformDeezer,
		URL:        da.Link,
	}

	if da.Artist != nil && da.Artist.Name != "" {
		album.Artists = append(album.Artists, da.Artist.Name)
	}

	if da.CoverMedium != "" {
		album.CoverURL = da.CoverMedium
	} else {
		album.CoverURL = da.Cover
	}

	if album.URL == "" && da.ID != 0 {
		album.URL = fmt.Sprintf("%s/album/%d", deezerWebURL, da.ID)
	}

	return album
}
