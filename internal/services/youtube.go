// YouTube Music [Service] implementation
//
// YouTube Music exposes no public search either. Source metadata comes from
// the noembed.com oEmbed aggregator, which resolves watch URLs without an API
// key; the target direction is served by music.youtube.com search links.
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
	defaultYouTubeOEmbedURL = "https://noembed.com/embed"
	youtubeMusicURL         = "https://music.youtube.com"
)

// youtubeOEmbed is the subset of the noembed response the adapter consumes.
type youtubeOEmbed struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Error        string `json:"error"`
}

// YouTubeService implements the Service interface for YouTube Music.
type YouTubeService struct {
	oembedURL  string
	httpClient *http.Client
}

// NewYouTubeService creates a YouTube Music service instance. An empty
// oembedURL falls back to noembed.com/embed.
func NewYouTubeService(oembedURL string) *YouTubeService {
	if oembedURL == "" {
		oembedURL = defaultYouTubeOEmbedURL
	}

	return &YouTubeService{
		oembedURL:  strings.TrimRight(oembedURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the service display name.
func (y *YouTubeService) Name() string { return "YouTube Music" }

// ID returns the platform identifier.
func (y *YouTubeService) ID() string { return models.PlatformYouTube }

// Searchable reports that YouTube Music has no public search API.
func (y *YouTubeService) Searchable() bool { return false }

// LookupTrack resolves a video id through noembed.
//
// Auto-generated music channels are named "{Artist} - Topic"; the suffix is
// stripped to recover the artist.
func (y *YouTubeService) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s", youtubeMusicURL, url.QueryEscape(id))
	reqURL := y.oembedURL + "?url=" + url.QueryEscape(watchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnknown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: noembed status %d", shared.ErrUnknown, resp.StatusCode)
	}

	var oembed youtubeOEmbed
	if err := json.NewDecoder(resp.Body).Decode(&oembed); err != nil {
		return nil, fmt.Errorf("failed to decode noembed response: %w", err)
	}
	if oembed.Error != "" {
		return nil, fmt.Errorf("%w: noembed: %s", shared.ErrNotFound, oembed.Error)
	}

	track := &models.Track{
		ID:       id,
		Title:    oembed.Title,
		CoverURL: oembed.ThumbnailURL,
		Platform: models.PlatformYouTube,
		URL:      watchURL,
	}
	if artist := strings.TrimSuffix(oembed.AuthorName, " - Topic"); artist != "" {
		track.Artists = []string{artist}
	}

	return track, nil
}

// LookupAlbum resolves an album playlist id. noembed does not resolve
// playlist URLs, so only a degraded record carrying the canonical URL is
// returned; the caller treats the empty title as a fallback record.
func (y *YouTubeService) LookupAlbum(ctx context.Context, id string) (*models.Album, error) {
	return &models.Album{
		ID:       id,
		Platform: models.PlatformYouTube,
		URL:      fmt.Sprintf("%s/playlist?list=%s", youtubeMusicURL, url.QueryEscape(id)),
	}, nil
}

// SearchTracks always fails: YouTube Music has no public search.
func (y *YouTubeService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	return nil, fmt.Errorf("%w: youtube music", shared.ErrNoSearch)
}

// SearchAlbums always fails: YouTube Music has no public search.
func (y *YouTubeService) SearchAlbums(ctx context.Context, query string, limit int) ([]models.Album, error) {
	return nil, fmt.Errorf("%w: youtube music", shared.ErrNoSearch)
}

// TrackSearchLinks builds music.youtube.com search links for the source track.
func (y *YouTubeService) TrackSearchLinks(src models.Track) []models.Track {
	artist, title := src.PrimaryArtist(), strings.TrimSpace(src.Title)
	if artist == "" && title == "" {
		return nil
	}

	var links []models.Track
	if artist != "" && title != "" {
		links = append(links, youtubeSearchLink(src, artist+" "+title, models.QualityHigh))
	}
	if title != "" {
		links = append(links, youtubeSearchLink(src, title, models.QualityLow))
	} else {
		links = append(links, youtubeSearchLink(src, artist, models.QualityLow))
	}

	return links
}

// AlbumSearchLinks builds music.youtube.com album search links.
func (y *YouTubeService) AlbumSearchLinks(src models.Album) []models.Album {
	artist, title := src.PrimaryArtist(), strings.TrimSpace(src.Title)
	query := strings.TrimSpace(artist + " " + title + " album")
	if strings.TrimSpace(artist+title) == "" {
		return nil
	}

	return []models.Album{{
		Title:    title,
		Artists:  src.Artists,
		Platform: models.PlatformYouTube,
		URL:      youtubeMusicURL + "/search?q=" + url.QueryEscape(query),
		Link:     true,
		Quality:  linkQuality(artist, title),
	}}
}

func youtubeSearchLink(src models.Track, query, quality string) models.Track {
	return models.Track{
		Title:    src.Title,
		Artists:  src.Artists,
		Platform: models.PlatformYouTube,
		URL:      youtubeMusicURL + "/search?q=" + url.QueryEscape(query),
		Link:     true,
		Quality:  quality,
	}
}
