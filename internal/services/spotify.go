// Spotify [Service] implementation
//
// Spotify exposes no unauthenticated search, so this adapter resolves source
// metadata through the public oEmbed endpoint and synthesizes search-link
// records for the target direction.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/shared"
)

const (
	defaultSpotifyOEmbedURL = "https://open.spotify.com/oembed"
	spotifyWebURL           = "https://open.spotify.com"
)

// spotifyOEmbed is the subset of the oEmbed response the adapter consumes.
type spotifyOEmbed struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SpotifyService implements the Service interface for Spotify via oEmbed.
type SpotifyService struct {
	oembedURL  string
	httpClient *http.Client
}

// NewSpotifyService creates a Spotify service instance. An empty oembedURL
// falls back to open.spotify.com/oembed.
func NewSpotifyService(oembedURL string) *SpotifyService {
	if oembedURL == "" {
		oembedURL = defaultSpotifyOEmbedURL
	}

	return &SpotifyService{
		oembedURL:  strings.TrimRight(oembedURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the service display name.
func (s *SpotifyService) Name() string { return "Spotify" }

// ID returns the platform identifier.
func (s *SpotifyService) ID() string { return models.PlatformSpotify }

// Searchable reports that Spotify has no public search API.
func (s *SpotifyService) Searchable() bool { return false }

func (s *SpotifyService) fetchOEmbed(ctx context.Context, pageURL string) (*spotifyOEmbed, error) {
	reqURL := s.oembedURL + "?url=" + url.QueryEscape(pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnknown, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: spotify oembed status 404", shared.ErrNotFound)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: spotify oembed status %d", shared.ErrAccessDenied, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: spotify oembed status %d", shared.ErrUnknown, resp.StatusCode)
	}

	var oembed spotifyOEmbed
	if err := json.NewDecoder(resp.Body).Decode(&oembed); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}

	return &oembed, nil
}

// LookupTrack resolves a Spotify track id through oEmbed.
//
// oEmbed reports the title and cover; the artist arrives as author_name on
// track pages. Duration is not available without credentials.
func (s *SpotifyService) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	pageURL := spotifyWebURL + "/track/" + url.PathEscape(id)
	oembed, err := s.fetchOEmbed(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	track := &models.Track{
		ID:       id,
		Title:    oembed.Title,
		CoverURL: oembed.ThumbnailURL,
		Platform: models.PlatformSpotify,
		URL:      pageURL,
	}
	if oembed.AuthorName != "" {
		track.Artists = []string{oembed.AuthorName}
	}

	return track, nil
}

// LookupAlbum resolves a Spotify album id through oEmbed.
func (s *SpotifyService) LookupAlbum(ctx context.Context, id string) (*models.Album, error) {
	pageURL := spotifyWebURL + "/album/" + url.PathEscape(id)
	oembed, err := s.fetchOEmbed(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	album := &models.Album{
		ID:       id,
		Title:    oembed.Title,
		CoverURL: oembed.ThumbnailURL,
		Platform: models.PlatformSpotify,
		URL:      pageURL,
	}
	if oembed.AuthorName != "" {
		album.Artists = []string{oembed.AuthorName}
	}

	return album, nil
}

// SearchTracks always fails: Spotify has no public search.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	return nil, fmt.Errorf("%w: spotify", shared.ErrNoSearch)
}

// SearchAlbums always fails: Spotify has no public search.
func (s *SpotifyService) SearchAlbums(ctx context.Context, query string, limit int) ([]models.Album, error) {
	return nil, fmt.Errorf("%w: spotify", shared.ErrNoSearch)
}

// TrackSearchLinks builds open.spotify.com search links for the source track.
// The artist+title link is high quality; a title-only fallback is appended
// when an artist exists so a bad artist string cannot bury the result.
func (s *SpotifyService) TrackSearchLinks(src models.Track) []models.Track {
	artist, title := src.PrimaryArtist(), strings.TrimSpace(src.Title)
	if artist == "" && title == "" {
		return nil
	}

	var links []models.Track
	if artist != "" && title != "" {
		links = append(links, spotifySearchLink(src, artist+" "+title, models.QualityHigh))
	}
	if title != "" {
		links = append(links, spotifySearchLink(src, title, models.QualityLow))
	} else {
		links = append(links, spotifySearchLink(src, artist, models.QualityLow))
	}

	return links
}

// AlbumSearchLinks builds open.spotify.com album search links.
func (s *SpotifyService) AlbumSearchLinks(src models.Album) []models.Album {
	artist, title := src.PrimaryArtist(), strings.TrimSpace(src.Title)
	query := strings.TrimSpace(artist + " " + title)
	if query == "" {
		return nil
	}

	return []models.Album{{
		Title:    title,
		Artists:  src.Artists,
		Platform: models.PlatformSpotify,
		URL:      spotifyWebURL + "/search/" + url.PathEscape(query) + "/albums",
		Link:     true,
		Quality:  linkQuality(artist, title),
	}}
}

func spotifySearchLink(src models.Track, query, quality string) models.Track {
	return models.Track{
		Title:    src.Title,
		Artists:  src.Artists,
		Platform: models.PlatformSpotify,
		URL:      spotifyWebURL + "/search/" + url.PathEscape(query),
		Link:     true,
		Quality:  quality,
	}
}
