package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStats prints the number of cached source lookups.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: cache is not configured", shared.ErrMissingConfig)
	}

	count, err := r.cache.Count()
	if err != nil {
		return fmt.Errorf("failed to count cache entries: %w", err)
	}

	return r.writePlainln("Cached lookups: %d", count)
}

// CacheClear deletes every cached source lookup.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: cache is not configured", shared.ErrMissingConfig)
	}

	deleted, err := r.cache.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("cache cleared", "deleted", deleted)
	return r.writePlainln("Deleted %d cached lookups", deleted)
}

// CachePurge deletes only expired cached source lookups.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: cache is not configured", shared.ErrMissingConfig)
	}

	purged, err := r.cache.Purge()
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	r.logger.Info("cache purged", "purged", purged)
	return r.writePlainln("Purged %d expired lookups", purged)
}
