package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
)

// fakeService is a minimal Service for engine tests.
type fakeService struct {
	id         string
	name       string
	searchable bool

	tracks map[string]models.Track
	albums map[string]models.Album

	searchResults []models.Track
	searchErr     error

	lookupCalls int
	queries     []string
}

func (f *fakeService) Name() string     { return f.name }
func (f *fakeService) ID() string       { return f.id }
func (f *fakeService) Searchable() bool { return f.searchable }

func (f *fakeService) LookupTrack(_ context.Context, id string) (*models.Track, error) {
	f.lookupCalls++
	if track, ok := f.tracks[id]; ok {
		return &track, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeService) LookupAlbum(_ context.Context, id string) (*models.Album, error) {
	f.lookupCalls++
	if album, ok := f.albums[id]; ok {
		return &album, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeService) SearchTracks(_ context.Context, query string, _ int) ([]models.Track, error) {
	f.queries = append(f.queries, query)
	return f.searchResults, f.searchErr
}

func (f *fakeService) SearchAlbums(_ context.Context, query string, _ int) ([]models.Album, error) {
	f.queries = append(f.queries, query)
	return nil, f.searchErr
}

func (f *fakeService) TrackSearchLinks(src models.Track) []models.Track {
	return []models.Track{{
		Title:    src.Title,
		Artists:  src.Artists,
		Platform: f.id,
		URL:      "https://example.com/search",
		Link:     true,
		Quality:  models.QualityHigh,
	}}
}

func (f *fakeService) AlbumSearchLinks(src models.Album) []models.Album {
	return []models.Album{{
		Title:    src.Title,
		Artists:  src.Artists,
		Platform: f.id,
		URL:      "https://example.com/search",
		Link:     true,
		Quality:  models.QualityHigh,
	}}
}

// fakeCache is an in-memory SourceCache.
type fakeCache struct {
	tracks map[string]models.Track
	albums map[string]models.Album
	puts   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		tracks: make(map[string]models.Track),
		albums: make(map[string]models.Album),
	}
}

func (c *fakeCache) GetTrack(platform, id string) (*models.Track, bool) {
	track, ok := c.tracks[platform+"/"+id]
	if !ok {
		return nil, false
	}
	return &track, true
}

func (c *fakeCache) PutTrack(platform, id string, track models.Track) error {
	c.tracks[platform+"/"+id] = track
	c.puts++
	return nil
}

func (c *fakeCache) GetAlbum(platform, id string) (*models.Album, bool) {
	album, ok := c.albums[platform+"/"+id]
	if !ok {
		return nil, false
	}
	return &album, true
}

func (c *fakeCache) PutAlbum(platform, id string, album models.Album) error {
	c.albums[platform+"/"+id] = album
	c.puts++
	return nil
}

func testServices() (map[string]services.Service, *fakeService, *fakeService, *fakeService) {
	deezer := &fakeService{
		id:         models.PlatformDeezer,
		name:       "Deezer",
		searchable: true,
		tracks: map[string]models.Track{
			"3135556": {
				ID:       "3135556",
				Title:    "Harder, Better, Faster, Stronger",
				Artists:  []string{"Daft Punk"},
				Duration: 224,
				Platform: models.PlatformDeezer,
			},
		},
		albums: map[string]models.Album{
			"302127": {
				ID:       "302127",
				Title:    "Discovery",
				Artists:  []string{"Daft Punk"},
				Platform: models.PlatformDeezer,
			},
		},
	}
	spotify := &fakeService{id: models.PlatformSpotify, name: "Spotify"}
	youtube := &fakeService{id: models.PlatformYouTube, name: "YouTube Music"}

	svcs := map[string]services.Service{
		models.PlatformDeezer:  deezer,
		models.PlatformSpotify: spotify,
		models.PlatformYouTube: youtube,
	}
	return svcs, deezer, spotify, youtube
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("Track Link Fans Out To All Other Platforms", func(t *testing.T) {
		svcs, _, _, _ := testServices()
		engine := NewConvertEngine(svcs, nil, nil, nil)

		result, err := engine.Convert(ctx, nil, "https://www.deezer.com/track/3135556")
		if err != nil {
			t.Fatalf("convert failed: %v", err)
		}

		if result.Kind != services.KindTrack {
			t.Errorf("expected track kind, got %q", result.Kind)
		}
		if result.Source == nil || result.Source.Title != "Harder, Better, Faster, Stronger" {
			t.Fatalf("unexpected source: %+v", result.Source)
		}
		if len(result.Targets) != 2 {
			t.Fatalf("expected 2 targets, got %d", len(result.Targets))
		}

		// Targets are ordered by platform id: spotify before ytmusic.
		if result.Targets[0].Platform != models.PlatformSpotify {
			t.Errorf("expected spotify first, got %q", result.Targets[0].Platform)
		}
		if result.Targets[1].Platform != models.PlatformYouTube {
			t.Errorf("expected ytmusic second, got %q", result.Targets[1].Platform)
		}

		for _, target := range result.Targets {
			if target.Err != nil {
				t.Errorf("target %s errored: %v", target.Platform, target.Err)
			}
			if len(target.Links) != 1 || !target.Links[0].Link {
				t.Errorf("expected one search link for %s, got %+v", target.Platform, target.Links)
			}
		}
	})

	t.Run("Searchable Target Runs Match Pipeline", func(t *testing.T) {
		svcs, _, spotify, _ := testServices()
		spotify.searchable = true
		spotify.searchResults = []models.Track{{
			ID:       "sp1",
			Title:    "Harder, Better, Faster, Stronger",
			Artists:  []string{"Daft Punk"},
			Duration: 224,
			Platform: models.PlatformSpotify,
		}}

		engine := NewConvertEngine(svcs, nil, nil, nil)
		result, err := engine.Convert(ctx, nil, "deezer.com/track/3135556")
		if err != nil {
			t.Fatalf("convert failed: %v", err)
		}

		var spotifyOutcome *TargetOutcome
		for i := range result.Targets {
			if result.Targets[i].Platform == models.PlatformSpotify {
				spotifyOutcome = &result.Targets[i]
			}
		}
		if spotifyOutcome == nil {
			t.Fatal("spotify outcome missing")
		}
		if len(spotifyOutcome.Matches) != 1 || spotifyOutcome.Matches[0].ID != "sp1" {
			t.Errorf("expected scored match, got %+v", spotifyOutcome.Matches)
		}
		if len(spotifyOutcome.Links) != 0 {
			t.Errorf("searchable target must not emit links, got %+v", spotifyOutcome.Links)
		}
		if len(spotify.queries) == 0 {
			t.Error("expected search queries against spotify")
		}
	})

	t.Run("Album Link", func(t *testing.T) {
		svcs, _, _, _ := testServices()
		engine := NewConvertEngine(svcs, nil, nil, nil)

		result, err := engine.Convert(ctx, nil, "https://www.deezer.com/en/album/302127")
		if err != nil {
			t.Fatalf("convert failed: %v", err)
		}

		if result.Kind != services.KindAlbum {
			t.Errorf("expected album kind, got %q", result.Kind)
		}
		if result.SourceAlbum == nil || result.SourceAlbum.Title != "Discovery" {
			t.Fatalf("unexpected source album: %+v", result.SourceAlbum)
		}
		for _, target := range result.Targets {
			if len(target.AlbumLinks) != 1 {
				t.Errorf("expected album search link for %s", target.Platform)
			}
		}
	})

	t.Run("Cache Skips Repeat Lookups", func(t *testing.T) {
		svcs, deezer, _, _ := testServices()
		cache := newFakeCache()
		engine := NewConvertEngine(svcs, nil, cache, nil)

		if _, err := engine.Convert(ctx, nil, "https://www.deezer.com/track/3135556"); err != nil {
			t.Fatalf("first convert failed: %v", err)
		}
		if cache.puts != 1 {
			t.Errorf("expected 1 cache put, got %d", cache.puts)
		}

		if _, err := engine.Convert(ctx, nil, "https://www.deezer.com/track/3135556"); err != nil {
			t.Fatalf("second convert failed: %v", err)
		}
		if deezer.lookupCalls != 1 {
			t.Errorf("expected 1 upstream lookup, got %d", deezer.lookupCalls)
		}
	})

	t.Run("Unrecognized Link", func(t *testing.T) {
		svcs, _, _, _ := testServices()
		engine := NewConvertEngine(svcs, nil, nil, nil)

		_, err := engine.Convert(ctx, nil, "https://soundcloud.com/artist/song")
		if !errors.Is(err, shared.ErrUnrecognizedLink) {
			t.Errorf("expected ErrUnrecognizedLink, got %v", err)
		}
	})

	t.Run("Missing Adapter", func(t *testing.T) {
		engine := NewConvertEngine(map[string]services.Service{}, nil, nil, nil)

		_, err := engine.Convert(ctx, nil, "https://www.deezer.com/track/1")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Source Lookup Failure", func(t *testing.T) {
		svcs, _, _, _ := testServices()
		engine := NewConvertEngine(svcs, nil, nil, nil)

		_, err := engine.Convert(ctx, nil, "https://www.deezer.com/track/999999")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Progress Updates Are Non Blocking", func(t *testing.T) {
		svcs, _, _, _ := testServices()
		engine := NewConvertEngine(svcs, nil, nil, nil)

		// Unbuffered channel nobody reads; Convert must not hang.
		progress := make(chan ProgressUpdate)
		if _, err := engine.Convert(ctx, progress, "https://www.deezer.com/track/3135556"); err != nil {
			t.Fatalf("convert failed: %v", err)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tc := []struct {
		phase Phase
		want  string
	}{
		{ParseLink, "parse_link"},
		{ResolveSource, "resolve_source"},
		{MatchTargets, "match_targets"},
		{Done, "done"},
		{Phase(99), ""},
	}

	for _, c := range tc {
		if got := c.phase.String(); got != c.want {
			t.Errorf("Phase(%d).String() = %q, want %q", c.phase, got, c.want)
		}
	}
}
