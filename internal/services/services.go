package services

import (
	"context"

	"github.com/desertthunder/tunelink/internal/models"
)

// maxSearchLimit caps any caller-supplied search limit to bound payload size.
const maxSearchLimit = 5

// Service defines the adapter contract for a music platform.
//
// The match engine depends only on the SearchTracks/SearchAlbums shape; the
// remaining methods serve source resolution and the search-link fallback for
// platforms without a public search API.
type Service interface {
	// Name returns the display name of the platform (e.g. "Deezer").
	Name() string

	// ID returns the stable platform identifier used in records and URLs.
	ID() string

	// Searchable reports whether the platform has a programmatic public
	// search. Non-searchable platforms are served via search links.
	Searchable() bool

	// LookupTrack resolves a platform-native track id to a Track.
	LookupTrack(ctx context.Context, id string) (*models.Track, error)

	// LookupAlbum resolves a platform-native album id to an Album.
	LookupAlbum(ctx context.Context, id string) (*models.Album, error)

	// SearchTracks runs a public track search. Implementations cap limit
	// at a small constant. Returns shared.ErrNoSearch when Searchable is
	// false.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// SearchAlbums runs a public album search, with the same contract as
	// SearchTracks.
	SearchAlbums(ctx context.Context, query string, limit int) ([]models.Album, error)

	// TrackSearchLinks deterministically builds 1-3 search-link pseudo
	// records for the source track. These bypass the scoring pipeline;
	// their quality hint depends on whether both artist and title were
	// embeddable in the query.
	TrackSearchLinks(src models.Track) []models.Track

	// AlbumSearchLinks is the album counterpart of TrackSearchLinks.
	AlbumSearchLinks(src models.Album) []models.Album
}

func capLimit(limit int) int {
	if limit <= 0 || limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

func linkQuality(artist, title string) string {
	if artist != "" && title != "" {
		return models.QualityHigh
	}
	return models.QualityLow
}
