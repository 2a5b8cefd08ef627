package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/gemini"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckStore store.DeckStore
	cardStore store.CardStore

	jwtService        auth.JWTService
	generator         generation.Generator
	deckService       service.DeckService
	cardService       service.CardService
	bulkEditService   service.BulkEditService
	generationService service.GenerationService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection is owned by the application from here on.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	// Generation is optional; without a key the generate endpoint reports 503.
	if cfg.LLM.Enabled() {
		gen, err := gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		app.generator = gen
		logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

func (app *application) initServices() error {
	var err error

	app.deckService, err = service.NewDeckService(app.deckStore, app.db, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create deck service: %w", err)
	}

	app.cardService, err = service.NewCardService(app.cardStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create card service: %w", err)
	}

	app.bulkEditService, err = service.NewBulkEditService(app.cardStore, app.config.Edit.MaxConcurrency, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create bulk edit service: %w", err)
	}

	app.generationService, err = service.NewGenerationService(
		app.deckStore,
		app.cardStore,
		app.db,
		app.generator,
		app.config.LLM.CardCount,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create generation service: %w", err)
	}

	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
