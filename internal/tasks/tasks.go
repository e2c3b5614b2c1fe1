// package tasks implements cross-platform track and album conversion.
//
// The core abstraction is ConvertEngine, which resolves a streaming link to
// its source record and fans out to the remaining platforms, matching via
// public search where available and falling back to search links elsewhere.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelink/internal/match"
	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
)

// SourceCache stores resolved source records so repeat conversions of the
// same link skip the upstream lookup. Only source metadata is cached, never
// match results.
type SourceCache interface {
	GetTrack(platform, id string) (*models.Track, bool)
	PutTrack(platform, id string, track models.Track) error
	GetAlbum(platform, id string) (*models.Album, bool)
	PutAlbum(platform, id string, album models.Album) error
}

// TargetOutcome is the conversion result for a single target platform.
type TargetOutcome struct {
	Platform     string         `json:"platform"`                // Platform identifier
	ServiceName  string         `json:"service"`                 // Display name
	Matches      []models.Track `json:"matches,omitempty"`       // Ranked track matches (searchable platforms)
	AlbumMatches []models.Album `json:"album_matches,omitempty"` // Ranked album matches (searchable platforms)
	Links        []models.Track `json:"links,omitempty"`         // Search-link records (non-searchable platforms)
	AlbumLinks   []models.Album `json:"album_links,omitempty"`   // Album search-link records
	Err          error          `json:"-"`                       // Error if the target could not be processed
}

// ConversionResult contains all data from a full conversion operation.
type ConversionResult struct {
	Kind        services.LinkKind `json:"kind"`                   // Track or album conversion
	Source      *models.Track     `json:"source,omitempty"`       // Resolved source track (track conversions)
	SourceAlbum *models.Album     `json:"source_album,omitempty"` // Resolved source album (album conversions)
	Targets     []TargetOutcome   `json:"targets"`                // One outcome per target platform, ordered by platform id
}

// ConvertEngine resolves a source link and matches it on every other
// registered platform.
type ConvertEngine struct {
	services map[string]services.Service
	matcher  *match.Engine
	cache    SourceCache
	logger   *log.Logger
}

// NewConvertEngine creates a ConvertEngine over the given platform adapters.
// cache may be nil, in which case every conversion hits the upstream APIs.
func NewConvertEngine(svcs map[string]services.Service, matcher *match.Engine, cache SourceCache, logger *log.Logger) *ConvertEngine {
	if logger == nil {
		logger = log.Default()
	}
	if matcher == nil {
		matcher = match.NewEngine(logger)
	}
	return &ConvertEngine{
		services: svcs,
		matcher:  matcher,
		cache:    cache,
		logger:   logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ConvertEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Convert resolves rawURL to its source record and produces matches or
// search links on every other registered platform.
//
// Target platforms are processed concurrently and the call waits for all of
// them; a failing target is reported in its outcome rather than aborting the
// others. Targets appear in the result sorted by platform id so output is
// deterministic regardless of completion order.
func (e *ConvertEngine) Convert(ctx context.Context, progress chan<- ProgressUpdate, rawURL string) (*ConversionResult, error) {
	e.sendProgress(progress, parseLinkUpdate(rawURL))

	link, err := services.ParseLink(rawURL)
	if err != nil {
		return nil, err
	}

	source, ok := e.services[link.Platform]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter registered for %s", shared.ErrServiceUnavailable, link.Platform)
	}

	result := &ConversionResult{Kind: link.Kind}

	e.sendProgress(progress, resolveSourceUpdate(source.Name(), string(link.Kind), link.ID))

	switch link.Kind {
	case services.KindTrack:
		track, err := e.resolveTrack(ctx, source, link.ID)
		if err != nil {
			return nil, err
		}
		result.Source = track
	case services.KindAlbum:
		album, err := e.resolveAlbum(ctx, source, link.ID)
		if err != nil {
			return nil, err
		}
		result.SourceAlbum = album
	}

	targets := e.targetsFor(link.Platform)
	outcomes := make([]TargetOutcome, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target services.Service) {
			defer wg.Done()
			e.sendProgress(progress, matchTargetUpdate(target.Name(), i+1, len(targets)))
			outcomes[i] = e.convertTarget(ctx, target, result)
		}(i, target)
	}
	wg.Wait()

	result.Targets = outcomes
	e.sendProgress(progress, doneUpdate(len(targets)))
	return result, nil
}

// resolveTrack fetches the source track, consulting the cache first.
func (e *ConvertEngine) resolveTrack(ctx context.Context, svc services.Service, id string) (*models.Track, error) {
	if e.cache != nil {
		if track, ok := e.cache.GetTrack(svc.ID(), id); ok {
			e.logger.Debug("source track cache hit", "platform", svc.ID(), "id", id)
			return track, nil
		}
	}

	track, err := svc.LookupTrack(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving %s track %s: %w", svc.Name(), id, err)
	}

	if e.cache != nil {
		if err := e.cache.PutTrack(svc.ID(), id, *track); err != nil {
			e.logger.Warn("failed to cache source track", "platform", svc.ID(), "id", id, "error", err)
		}
	}
	return track, nil
}

// resolveAlbum fetches the source album, consulting the cache first.
func (e *ConvertEngine) resolveAlbum(ctx context.Context, svc services.Service, id string) (*models.Album, error) {
	if e.cache != nil {
		if album, ok := e.cache.GetAlbum(svc.ID(), id); ok {
			e.logger.Debug("source album cache hit", "platform", svc.ID(), "id", id)
			return album, nil
		}
	}

	album, err := svc.LookupAlbum(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving %s album %s: %w", svc.Name(), id, err)
	}

	if e.cache != nil {
		if err := e.cache.PutAlbum(svc.ID(), id, *album); err != nil {
			e.logger.Warn("failed to cache source album", "platform", svc.ID(), "id", id, "error", err)
		}
	}
	return album, nil
}

// convertTarget produces matches or search links on one target platform.
func (e *ConvertEngine) convertTarget(ctx context.Context, target services.Service, result *ConversionResult) TargetOutcome {
	outcome := TargetOutcome{Platform: target.ID(), ServiceName: target.Name()}

	switch result.Kind {
	case services.KindTrack:
		src := *result.Source
		if target.Searchable() {
			outcome.Matches = e.matcher.FindTracks(ctx, src, target.SearchTracks)
		} else {
			outcome.Links = target.TrackSearchLinks(src)
		}
	case services.KindAlbum:
		src := *result.SourceAlbum
		if target.Searchable() {
			outcome.AlbumMatches = e.matcher.FindAlbums(ctx, src, target.SearchAlbums)
		} else {
			outcome.AlbumLinks = target.AlbumSearchLinks(src)
		}
	default:
		outcome.Err = fmt.Errorf("%w: unknown link kind %q", shared.ErrInvalidInput, result.Kind)
	}

	return outcome
}

// targetsFor returns every registered service except the source platform,
// sorted by platform id for deterministic output.
func (e *ConvertEngine) targetsFor(sourcePlatform string) []services.Service {
	ids := make([]string, 0, len(e.services))
	for id := range e.services {
		if id != sourcePlatform {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	targets := make([]services.Service, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, e.services[id])
	}
	return targets
}
