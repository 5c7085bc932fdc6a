package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/service"
)

// application holds the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	poetryService service.PoetryService
}

// newApplication creates a new application instance with all dependencies initialized.
// The generator is built by the caller so tests can substitute a stub provider.
func newApplication(cfg *config.Config, logger *slog.Logger, generator generation.Generator) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := cfg.ValidateTimeouts(); err != nil {
		return nil, err
	}

	poetryService, err := service.NewPoetryService(
		generator,
		providerTimeout(cfg.LLM),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create poetry service: %w", err)
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		poetryService: poetryService,
	}

	logStartup(logger, cfg)
	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
