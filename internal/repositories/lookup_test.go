package repositories

import (
	"testing"
	"time"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/shared"
)

func newTestRepo(t *testing.T, ttl time.Duration) *LookupRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewLookupRepository(db, ttl)
}

func TestLookupRepository(t *testing.T) {
	track := models.Track{
		ID:       "3135556",
		Title:    "Harder, Better, Faster, Stronger",
		Artists:  []string{"Daft Punk"},
		Duration: 224,
		Platform: "deezer",
	}

	t.Run("Put And Get Track", func(t *testing.T) {
		repo := newTestRepo(t, time.Hour)

		if _, ok := repo.GetTrack("deezer", "3135556"); ok {
			t.Fatal("expected miss before put")
		}

		if err := repo.PutTrack("deezer", "3135556", track); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, ok := repo.GetTrack("deezer", "3135556")
		if !ok {
			t.Fatal("expected hit after put")
		}
		if got.Title != track.Title || got.Duration != 224 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("Replace On Conflict", func(t *testing.T) {
		repo := newTestRepo(t, time.Hour)

		if err := repo.PutTrack("deezer", "1", track); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		updated := track
		updated.Title = "Updated Title"
		if err := repo.PutTrack("deezer", "1", updated); err != nil {
			t.Fatalf("second put failed: %v", err)
		}

		got, ok := repo.GetTrack("deezer", "1")
		if !ok || got.Title != "Updated Title" {
			t.Errorf("expected replacement, got %+v", got)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 row, got %d", count)
		}
	})

	t.Run("Expired Entry Is A Miss", func(t *testing.T) {
		repo := newTestRepo(t, time.Hour)

		if err := repo.PutTrack("deezer", "old", track); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		// Jump the clock past the TTL.
		repo.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		if _, ok := repo.GetTrack("deezer", "old"); ok {
			t.Error("expected expired entry to miss")
		}

		purged, err := repo.Purge()
		if err != nil {
			t.Fatalf("purge failed: %v", err)
		}
		if purged != 1 {
			t.Errorf("expected 1 purged row, got %d", purged)
		}
	})

	t.Run("Album Round Trip", func(t *testing.T) {
		repo := newTestRepo(t, time.Hour)
		album := models.Album{ID: "302127", Title: "Discovery", TrackCount: 14, Platform: "deezer"}

		if err := repo.PutAlbum("deezer", "302127", album); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, ok := repo.GetAlbum("deezer", "302127")
		if !ok || got.TrackCount != 14 {
			t.Errorf("got %+v", got)
		}

		// Track and album namespaces must not collide.
		if _, ok := repo.GetTrack("deezer", "302127"); ok {
			t.Error("album entry must not satisfy a track get")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := newTestRepo(t, time.Hour)
		if err := repo.PutTrack("deezer", "1", track); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		deleted, err := repo.Clear()
		if err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deleted row, got %d", deleted)
		}

		count, _ := repo.Count()
		if count != 0 {
			t.Errorf("expected empty cache, got %d", count)
		}
	})
}
