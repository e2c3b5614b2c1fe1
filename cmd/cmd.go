// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// convertCommand resolves a link and prints matches on the other platforms
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"c"},
		Usage:   "Convert a track or album link to the other platforms",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json or markdown",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Print progress updates while converting",
			},
		},
		Action: r.Convert,
	}
}

// resolveCommand looks up a link's source metadata without matching
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve a link to its source metadata",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Resolve,
	}
}

// searchCommand runs a raw platform search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search a platform's public API directly",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "platform",
			},
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "albums",
				Usage: "Search albums instead of tracks",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}

// serveCommand runs the HTTP conversion API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP conversion API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// cacheCommand manages the source-lookup cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the source-lookup cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count",
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Delete all cached lookups",
				Action: r.CacheClear,
			},
			{
				Name:   "purge",
				Usage:  "Delete expired cached lookups",
				Action: r.CachePurge,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination path",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize cache database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive conversion.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for link conversion",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Action: r.TUI,
	}
}
