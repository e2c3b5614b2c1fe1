// package models defines the data model for the link conversion service
package models

import "strings"

// Platform identifiers used across services, tasks, and the cache.
const (
	PlatformSpotify = "spotify"
	PlatformDeezer  = "deezer"
	PlatformYouTube = "ytmusic"
)

// Quality hints attached to synthesized search-link records.
//
// A link is high quality when both artist and title were embedded in the
// search query, low quality when only one of them was available.
const (
	QualityHigh = "high"
	QualityLow  = "low"
)

// Track represents a music track from any platform.
//
// All fields are values; a Track is created and consumed within a single
// conversion and never shared or mutated across calls.
type Track struct {
	ID       string   `json:"id,omitempty"`       // Platform-native identifier
	Title    string   `json:"title"`              // Display title, never normalized
	Artists  []string `json:"artists,omitempty"`  // First entry is the primary artist
	Duration int      `json:"duration,omitempty"` // Duration in seconds, 0 when unknown
	CoverURL string   `json:"cover_url,omitempty"`
	Platform string   `json:"platform"`
	URL      string   `json:"url,omitempty"`     // Canonical page or search URL
	Link     bool     `json:"link,omitempty"`    // True for synthesized search-link records
	Quality  string   `json:"quality,omitempty"` // Set on search-link records only
}

// Album represents an album from any platform.
type Album struct {
	ID         string   `json:"id,omitempty"`
	Title      string   `json:"title"`
	Artists    []string `json:"artists,omitempty"`
	TrackCount int      `json:"track_count,omitempty"`
	CoverURL   string   `json:"cover_url,omitempty"`
	Platform   string   `json:"platform"`
	URL        string   `json:"url,omitempty"`
	Link       bool     `json:"link,omitempty"`
	Quality    string   `json:"quality,omitempty"`
}

// PrimaryArtist returns the first non-blank artist, or "" when none exists.
func (t Track) PrimaryArtist() string { return primaryArtist(t.Artists) }

// ArtistLine joins all artists for display.
func (t Track) ArtistLine() string { return strings.Join(t.Artists, ", ") }

// PrimaryArtist returns the first non-blank artist, or "" when none exists.
func (a Album) PrimaryArtist() string { return primaryArtist(a.Artists) }

// ArtistLine joins all artists for display.
func (a Album) ArtistLine() string { return strings.Join(a.Artists, ", ") }

func primaryArtist(artists []string) string {
	for _, a := range artists {
		if s := strings.TrimSpace(a); s != "" {
			return s
		}
	}
	return ""
}
