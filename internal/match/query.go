package match

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tunelink/internal/models"
)

// TrackQueries derives search queries for a source track in priority order.
//
// The artist+title query comes first when a primary artist exists, since the
// combined search dramatically reduces false positives. A title-only query is
// always appended as a fallback for cases where artist naming diverges across
// platforms ("The Beatles" vs "Beatles").
func TrackQueries(src models.Track) []string {
	var queries []string
	if artist := src.PrimaryArtist(); artist != "" {
		queries = appendQuery(queries, fmt.Sprintf("%s %s", artist, src.Title))
	}
	return appendQuery(queries, src.Title)
}

// AlbumQueries derives search queries for a source album.
//
// Same two-tier pattern as TrackQueries with a literal "album" keyword to
// bias platform search toward album results over singles.
func AlbumQueries(src models.Album) []string {
	if strings.TrimSpace(src.Title) == "" {
		return nil
	}
	var queries []string
	if artist := src.PrimaryArtist(); artist != "" {
		queries = appendQuery(queries, fmt.Sprintf("%s %s album", artist, src.Title))
	}
	return appendQuery(queries, fmt.Sprintf("%s album", src.Title))
}

// appendQuery filters out queries that are blank or carry the literal text
// "undefined" (a guard against malformed upstream interpolations); such
// queries are never sent to the network.
func appendQuery(queries []string, q string) []string {
	q = strings.TrimSpace(q)
	if q == "" || strings.Contains(q, "undefined") {
		return queries
	}
	return append(queries, q)
}
