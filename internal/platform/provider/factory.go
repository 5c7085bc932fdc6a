// Package provider selects the generation.Generator adapter for the
// configured LLM provider.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/poetry-api/internal/config"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/platform/anthropic"
	"github.com/phrazzld/poetry-api/internal/platform/gemini"
	"github.com/phrazzld/poetry-api/internal/platform/ollama"
	"github.com/phrazzld/poetry-api/internal/platform/openai"
)

// NewGenerator returns the adapter named by cfg.Provider.
// The returned generator logs with a "provider" attribute.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Generator, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	log := logger.With("component", "generator", "provider", cfg.Provider)

	var (
		gen generation.Generator
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		gen, err = openai.NewGenerator(log, cfg)
	case config.ProviderGemini:
		gen, err = gemini.NewGeminiGenerator(ctx, log, cfg)
	case config.ProviderAnthropic:
		gen, err = anthropic.NewGenerator(log, cfg)
	case config.ProviderOllama:
		gen, err = ollama.NewGenerator(log, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s generator: %w", cfg.Provider, err)
	}

	return gen, nil
}
