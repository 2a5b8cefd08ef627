package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// setupAppDatabase opens the connection pool and checks connectivity.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Database connection failed", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns)
	return db, nil
}
