package match

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelink/internal/models"
)

// Scoring constants. The combined score is not clamped to [0, 100]; it is an
// open-ended ranking statistic and only the confidence threshold is semantic.
const (
	searchLimit = 3 // Per-query result cap, bounds payload size and latency
	maxResults  = 5 // Returned record cap

	confidenceThreshold = 40.0

	artistWeight = 0.55 // Artist mismatches are rarer and more disqualifying
	titleWeight  = 0.45

	containmentBonus = 1.2 // Title-only mode, substring containment either way

	durationCloseBonus = 5.0 // |Δduration| < 5s
	durationNearBonus  = 2.0 // |Δduration| < 15s
)

// SearchFunc is the injected platform track search. The engine is indifferent
// to the concrete adapter behind it; it only requires that the call
// eventually returns results or an error.
type SearchFunc func(ctx context.Context, query string, limit int) ([]models.Track, error)

// AlbumSearchFunc is the album counterpart of SearchFunc.
type AlbumSearchFunc func(ctx context.Context, query string, limit int) ([]models.Album, error)

// Engine scores and ranks platform search candidates against a source record.
// Stateless; a single Engine is safe for concurrent use.
type Engine struct {
	logger *log.Logger
}

// NewEngine creates a match Engine. A nil logger falls back to log.Default.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{logger: logger}
}

// FindTracks resolves the best target-platform matches for a source track.
//
// Each derived query is searched independently; a failed query is logged and
// treated as zero results rather than aborting its siblings. Candidates are
// scored, partitioned into confident and exploratory tiers at the threshold,
// and deduplicated by platform-native id within each tier (a later duplicate
// replaces the earlier one only when its score is not lower). The confident
// tier is returned when non-empty, otherwise the exploratory tier; both are
// capped at five records in insertion order. An empty slice means no match
// was found, which is a normal outcome.
func (e *Engine) FindTracks(ctx context.Context, src models.Track, search SearchFunc) []models.Track {
	confident := newTierSet[models.Track]()
	exploratory := newTierSet[models.Track]()

	for _, query := range TrackQueries(src) {
		candidates, err := search(ctx, query, searchLimit)
		if err != nil {
			e.logger.Debug("track search query failed", "query", query, "error", err)
			continue
		}

		for _, candidate := range candidates {
			score := scoreTrack(src, candidate)
			if score >= confidenceThreshold {
				confident.add(candidate.ID, candidate, score)
			} else {
				exploratory.add(candidate.ID, candidate, score)
			}
		}
	}

	if matches := confident.records(maxResults); len(matches) > 0 {
		return matches
	}
	return exploratory.records(maxResults)
}

// FindAlbums resolves the best target-platform matches for a source album.
// Identical pipeline to FindTracks without the duration bonus.
func (e *Engine) FindAlbums(ctx context.Context, src models.Album, search AlbumSearchFunc) []models.Album {
	confident := newTierSet[models.Album]()
	exploratory := newTierSet[models.Album]()

	for _, query := range AlbumQueries(src) {
		candidates, err := search(ctx, query, searchLimit)
		if err != nil {
			e.logger.Debug("album search query failed", "query", query, "error", err)
			continue
		}

		for _, candidate := range candidates {
			score := baseScore(src.PrimaryArtist(), src.Title, candidate.PrimaryArtist(), candidate.Title)
			if score >= confidenceThreshold {
				confident.add(candidate.ID, candidate, score)
			} else {
				exploratory.add(candidate.ID, candidate, score)
			}
		}
	}

	if matches := confident.records(maxResults); len(matches) > 0 {
		return matches
	}
	return exploratory.records(maxResults)
}

// scoreTrack computes the unbounded match score for a track candidate.
func scoreTrack(src, candidate models.Track) float64 {
	score := baseScore(src.PrimaryArtist(), src.Title, candidate.PrimaryArtist(), candidate.Title)

	// Duration proximity guards against same-title collisions (covers,
	// remixes) that differ materially in length.
	if src.Duration > 0 && candidate.Duration > 0 {
		diff := src.Duration - candidate.Duration
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff < 5:
			score += durationCloseBonus
		case diff < 15:
			score += durationNearBonus
		}
	}

	return score
}

// baseScore is the artist-weighted or title-only similarity shared by track
// and album scoring.
func baseScore(srcArtist, srcTitle, candArtist, candTitle string) float64 {
	if srcArtist != "" && candArtist != "" {
		return float64(Similarity(srcArtist, candArtist))*artistWeight +
			float64(Similarity(srcTitle, candTitle))*titleWeight
	}

	score := float64(Similarity(srcTitle, candTitle))

	// Partial containment rewards prefix matches common when platforms
	// append suffixes like "(Live)".
	ns, nc := Normalize(srcTitle), Normalize(candTitle)
	if ns != "" && nc != "" && (strings.Contains(nc, ns) || strings.Contains(ns, nc)) {
		score *= containmentBonus
	}

	return score
}

// tierSet is an insertion-ordered, id-deduplicated collection of scored
// candidates for one tier.
type tierSet[T any] struct {
	index   map[string]int
	entries []scored[T]
}

type scored[T any] struct {
	record T
	score  float64
}

func newTierSet[T any]() *tierSet[T] {
	return &tierSet[T]{index: make(map[string]int)}
}

// add inserts a candidate, replacing an earlier occurrence of the same id
// only when the new score is not lower. Records without an id are kept
// individually since nothing ties them together.
func (t *tierSet[T]) add(id string, record T, score float64) {
	if id != "" {
		if i, ok := t.index[id]; ok {
			if score >= t.entries[i].score {
				t.entries[i] = scored[T]{record: record, score: score}
			}
			return
		}
		t.index[id] = len(t.entries)
	}
	t.entries = append(t.entries, scored[T]{record: record, score: score})
}

// records returns up to limit records in insertion order.
func (t *tierSet[T]) records(limit int) []T {
	n := len(t.entries)
	if n > limit {
		n = limit
	}
	out := make([]T, 0, n)
	for _, entry := range t.entries[:n] {
		out = append(out, entry.record)
	}
	return out
}
