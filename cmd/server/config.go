package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
)

// loadAppConfig loads the server configuration from the environment and an
// optional config.yaml.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Auth.JWTSecret != "" {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}
	if !cfg.LLM.Enabled() {
		slog.Warn("No Gemini API key configured; AI card generation is disabled")
	}

	return cfg, nil
}
