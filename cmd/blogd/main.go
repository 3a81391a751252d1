// Command blogd runs the blog API.
//
//	blogd serve      start the HTTP server (default)
//	blogd migrate    bring the database schema up to date and exit
//	blogd version    print the build version
//
// Settings come from the environment (see internal/config) and can be
// overridden with flags, e.g. `blogd serve --driver memory --port 9000`.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/blog-api/internal/config"
	"github.com/sakif/blog-api/internal/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "blogd:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, loadErr := config.Load()

	root := &cobra.Command{
		Use:           "blogd",
		Short:         "Blog API server: users, posts and comments over HTTP/JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadErr
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Driver, "driver", cfg.Driver, "storage backend: sqlite, postgres or memory (BLOG_DRIVER)")
	flags.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database file (DB_PATH)")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string (DATABASE_URL)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (LOG_LEVEL)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json (LOG_FORMAT)")

	serve := newServeCmd(&cfg)
	root.AddCommand(serve, newMigrateCmd(&cfg), newVersionCmd())

	// `blogd` with no subcommand serves.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := setup(cmd, *cfg)
			if err != nil {
				return err
			}

			srv, err := server.New(cmd.Context(), *cfg, logger)
			if err != nil {
				logger.Error("failed to create server", slog.String("error", err.Error()))
				return err
			}

			// Start blocks until SIGINT/SIGTERM.
			if err := srv.Start(cmd.Context()); err != nil {
				logger.Error("server error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP listen port (PORT)")
	return cmd
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := setup(cmd, *cfg)
			if err != nil {
				return err
			}
			if cfg.Driver == config.DriverMemory {
				logger.Info("memory driver has no schema to migrate")
				return nil
			}

			// Opening a store runs its migrations.
			store, err := server.OpenStore(cmd.Context(), *cfg, logger)
			if err != nil {
				logger.Error("migration failed", slog.String("error", err.Error()))
				return err
			}
			logger.Info("schema is up to date", slog.String("driver", cfg.Driver))
			return store.Close()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "blogd", version)
		},
	}
}

// setup validates cfg and builds the logger every command uses.
func setup(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return newLogger(cmd, cfg), nil
}

// newLogger builds a slog logger: human-readable text by default, one JSON
// object per line with --log-format json.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level, _ := cfg.Level() // checked by Validate
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(cmd.OutOrStdout(), opts)
	if cfg.LogFormat == config.FormatJSON {
		h = slog.NewJSONHandler(cmd.OutOrStdout(), opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
