package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/shared"
)

// Record kinds stored in the lookups table.
const (
	kindTrack = "track"
	kindAlbum = "album"
)

// LookupRepository caches resolved source records keyed by platform, kind,
// and platform-native id. Rows older than the TTL are treated as absent and
// overwritten on the next put.
type LookupRepository struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewLookupRepository creates a LookupRepository with the given connection
// and TTL. A non-positive TTL falls back to 24 hours.
func NewLookupRepository(db *sql.DB, ttl time.Duration) *LookupRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &LookupRepository{db: db, ttl: ttl, now: time.Now}
}

// GetTrack returns a cached track lookup, reporting whether a fresh entry
// existed. Storage errors degrade to a cache miss.
func (r *LookupRepository) GetTrack(platform, nativeID string) (*models.Track, bool) {
	payload, ok := r.get(platform, kindTrack, nativeID)
	if !ok {
		return nil, false
	}

	var track models.Track
	if err := json.Unmarshal([]byte(payload), &track); err != nil {
		return nil, false
	}
	return &track, true
}

// PutTrack caches a resolved track lookup, replacing any previous entry.
func (r *LookupRepository) PutTrack(platform, nativeID string, track models.Track) error {
	payload, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("failed to encode track: %w", err)
	}
	return r.put(platform, kindTrack, nativeID, payload)
}

// GetAlbum returns a cached album lookup, reporting whether a fresh entry
// existed.
func (r *LookupRepository) GetAlbum(platform, nativeID string) (*models.Album, bool) {
	payload, ok := r.get(platform, kindAlbum, nativeID)
	if !ok {
		return nil, false
	}

	var album models.Album
	if err := json.Unmarshal([]byte(payload), &album); err != nil {
		return nil, false
	}
	return &album, true
}

// PutAlbum caches a resolved album lookup, replacing any previous entry.
func (r *LookupRepository) PutAlbum(platform, nativeID string, album models.Album) error {
	payload, err := json.Marshal(album)
	if err != nil {
		return fmt.Errorf("failed to encode album: %w", err)
	}
	return r.put(platform, kindAlbum, nativeID, payload)
}

// Count returns the number of cached rows, fresh or expired.
func (r *LookupRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM lookups`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lookups: %w", err)
	}
	return count, nil
}

// Clear removes every cached row and returns how many were deleted.
func (r *LookupRepository) Clear() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM lookups`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear lookups: %w", err)
	}
	return res.RowsAffected()
}

// Purge removes rows older than the TTL and returns how many were deleted.
func (r *LookupRepository) Purge() (int64, error) {
	cutoff := r.now().Add(-r.ttl)
	res, err := r.db.Exec(`DELETE FROM lookups WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge lookups: %w", err)
	}
	return res.RowsAffected()
}

func (r *LookupRepository) get(platform, kind, nativeID string) (string, bool) {
	var payload string
	var fetchedAt time.Time

	query := `SELECT payload, fetched_at FROM lookups WHERE platform = ? AND kind = ? AND native_id = ?`
	err := r.db.QueryRow(query, platform, kind, nativeID).Scan(&payload, &fetchedAt)
	if err != nil {
		return "", false
	}

	if r.now().Sub(fetchedAt) > r.ttl {
		return "", false
	}
	return payload, true
}

func (r *LookupRepository) put(platform, kind, nativeID string, payload []byte) error {
	query := `
		INSERT INTO lookups (id, platform, kind, native_id, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(platform, kind, native_id)
		DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`

	_, err := r.db.Exec(query, shared.GenerateID(), platform, kind, nativeID, string(payload), r.now())
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return fmt.Errorf("lookup cache not migrated: %w", err)
		}
		return fmt.Errorf("failed to cache lookup: %w", err)
	}
	return nil
}
