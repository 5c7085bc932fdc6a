// Package main implements the entry point for the Poetry API server,
// which generates haiku through a configurable LLM provider.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/platform/logger"
	"github.com/phrazzld/poetry-api/internal/platform/provider"
)

// main loads configuration, sets up logging, wires the LLM provider into the
// poetry service and serves HTTP until SIGINT or SIGTERM.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("poetry-api: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	generator, err := provider.NewGenerator(ctx, l, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	app, err := newApplication(cfg, l, generator)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// providerTimeout is the bound applied to a single provider call.
func providerTimeout(cfg config.LLMConfig) time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// logStartup records the effective configuration without secrets.
func logStartup(l *slog.Logger, cfg *config.Config) {
	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName,
		"llm_timeout_seconds", cfg.LLM.TimeoutSeconds,
		"llm_base_url_set", cfg.LLM.BaseURL != "",
		"llm_api_key_set", cfg.LLM.APIKey != "")
}
