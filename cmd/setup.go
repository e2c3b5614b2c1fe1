package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter config.toml from the embedded defaults.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config created", "path", path)
	return r.writePlainln("✓ Wrote %s", path)
}

// SetupDatabase initializes the cache database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Cache.Path
	if path == "" {
		return fmt.Errorf("%w: cache.path is empty", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.Migrate(db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	r.logger.Info("database ready", "path", path)
	return r.writePlainln("✓ Database initialized at %s", path)
}
