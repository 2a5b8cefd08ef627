// Package main implements the entry point for the flashdeck API server,
// which stores users' decks and cards, applies bulk edits and generates
// cards with an LLM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/flashdeck/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Printf("flashdeck server: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()

		cmd, err := postgres.ParseMigrationCommand(migrateCmd)
		if err != nil {
			return err
		}
		return postgres.Migrate(ctx, db, cmd, logger)
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	logger.Info("Application initialized",
		slog.Bool("ai_generation_enabled", cfg.LLM.Enabled()),
		slog.Int("edit_max_concurrency", cfg.Edit.MaxConcurrency))
	return app.Run(ctx)
}
