package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/repositories"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	svcs := map[string]services.Service{
		models.PlatformDeezer:  services.NewDeezerService(config.Platforms.Deezer.BaseURL, config.Platforms.Deezer.RateLimit),
		models.PlatformSpotify: services.NewSpotifyService(config.Platforms.Spotify.OEmbedURL),
		models.PlatformYouTube: services.NewYouTubeService(config.Platforms.YouTube.OEmbedURL),
	}

	var cache *repositories.LookupRepository
	if config.Cache.Path != "" {
		if db, err := shared.NewDatabase(config.Cache.Path); err == nil {
			shared.ConfigureDatabase(db, config.Cache.MaxOpenConns, config.Cache.MaxIdleConns)
			if err := shared.Migrate(db); err == nil {
				cache = repositories.NewLookupRepository(db, time.Duration(config.Cache.TTLHours)*time.Hour)
			} else {
				logger.Warn("cache migrations failed, continuing without cache", "error", err)
			}
		} else {
			logger.Warn("cache unavailable, continuing without cache", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Services: svcs,
		Cache:    cache,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "tunelink",
		Usage:    "Convert track & album links between Spotify, Deezer & YouTube Music",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
