package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunelink/internal/formatter"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/desertthunder/tunelink/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Convert resolves a link and prints matches for every other platform.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}
	format := cmd.String("format")

	var progress chan tasks.ProgressUpdate
	done := make(chan struct{})
	if cmd.Bool("progress") {
		progress = make(chan tasks.ProgressUpdate, 50)
		go func() {
			defer close(done)
			for update := range progress {
				r.logger.Info(update.Message, "phase", update.Phase.String())
			}
		}()
	} else {
		close(done)
	}

	result, err := r.engine.Convert(ctx, progress, rawURL)
	if progress != nil {
		close(progress)
	}
	<-done
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	var output []byte
	switch format {
	case "json":
		output, err = formatter.ToJSON(result)
	case "markdown", "md":
		output, err = formatter.ToMarkdown(result)
	case "text", "":
		output, err = formatter.ToText(result)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	return r.writePlain("%s", output)
}

// Resolve looks up a link's source metadata without running any matching.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	link, err := services.ParseLink(rawURL)
	if err != nil {
		return err
	}

	svc, ok := r.services[link.Platform]
	if !ok {
		return fmt.Errorf("%w: no adapter registered for %s", shared.ErrServiceUnavailable, link.Platform)
	}

	r.logger.Info("resolving link", "platform", link.Platform, "kind", link.Kind, "id", link.ID)

	var data any
	switch link.Kind {
	case services.KindAlbum:
		data, err = svc.LookupAlbum(ctx, link.ID)
	default:
		data, err = svc.LookupTrack(ctx, link.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve %s %s: %w", link.Platform, link.ID, err)
	}

	return r.writeJSON(data, cmd.Bool("pretty"))
}

// Search runs a raw public search against one platform.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.StringArg("platform")
	query := cmd.StringArg("query")
	if platform == "" || query == "" {
		return fmt.Errorf("%w: platform and query arguments are required", shared.ErrMissingArgument)
	}

	svc, ok := r.services[platform]
	if !ok {
		return fmt.Errorf("%w: unknown platform %q", shared.ErrInvalidInput, platform)
	}
	if !svc.Searchable() {
		return fmt.Errorf("%w: %s has no public search API", shared.ErrNoSearch, svc.Name())
	}

	limit := cmd.Int("limit")

	if cmd.Bool("albums") {
		albums, err := svc.SearchAlbums(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("album search failed: %w", err)
		}
		if cmd.Bool("json") {
			return r.writeJSON(albums, true)
		}
		for i, album := range albums {
			r.writePlain("%d. %s - %s\n", i+1, album.ArtistLine(), album.Title)
		}
		return nil
	}

	tracks, err := svc.SearchTracks(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("track search failed: %w", err)
	}
	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}
	for i, track := range tracks {
		r.writePlain("%d. %s - %s [%s]\n", i+1, track.ArtistLine(), track.Title, shared.FormatDuration(track.Duration))
	}
	return nil
}
