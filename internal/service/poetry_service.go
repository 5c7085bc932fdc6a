package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
	"github.com/phrazzld/poetry-api/internal/platform/logger"
	"github.com/phrazzld/poetry-api/internal/prompt"
	"github.com/phrazzld/poetry-api/internal/redact"
)

// PoetryService provides poem generation operations
type PoetryService interface {
	// GeneratePoem renders the haiku prompt for genre and theme and asks the
	// configured provider for a poem.
	//
	// Validation failures match domain.ErrValidation; every provider failure
	// matches generation.ErrProviderUnavailable.
	GeneratePoem(ctx context.Context, genre, theme string) (*domain.Poem, error)
}

type poetryServiceImpl struct {
	generator generation.Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPoetryService creates a PoetryService. A positive timeout bounds every
// provider call; zero leaves the caller's context in charge.
func NewPoetryService(
	generator generation.Generator,
	timeout time.Duration,
	logger *slog.Logger,
) (PoetryService, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &poetryServiceImpl{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "poetry_service")),
	}, nil
}

// GeneratePoem implements PoetryService.
func (s *poetryServiceImpl) GeneratePoem(ctx context.Context, genre, theme string) (*domain.Poem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	req := domain.PoemRequest{Genre: genre, Theme: theme}
	if err := req.Validate(); err != nil {
		return nil, NewPoetryServiceError("generate_poem", "invalid poem request", err)
	}

	text := prompt.Build(genre, theme)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	log.DebugContext(ctx, "requesting poem from provider",
		slog.Int("prompt_length", len(text)),
		slog.Duration("timeout", s.timeout))

	poem, err := s.generator.GeneratePoem(ctx, text)
	if err == nil && poem == nil {
		err = fmt.Errorf("%w: provider returned no poem", generation.ErrInvalidResponse)
	}
	if err != nil {
		// Every generator failure is a provider failure for callers.
		if !errors.Is(err, generation.ErrProviderUnavailable) {
			err = generation.NewProviderError("unknown", err)
		}
		log.WarnContext(ctx, "poem generation failed",
			slog.String("error", redact.Error(err)),
			slog.Duration("elapsed", time.Since(start)))
		return nil, NewPoetryServiceError("generate_poem", "provider call failed", err)
	}

	log.InfoContext(ctx, "poem generated",
		slog.String("genre", genre),
		slog.String("theme", theme),
		slog.Int("content_length", len(poem.Content)),
		slog.Duration("elapsed", time.Since(start)))

	return poem, nil
}
