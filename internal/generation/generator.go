package generation

import (
	"context"

	"github.com/phrazzld/poetry-api/internal/domain"
)

// Generator defines the interface for generating poems from a rendered prompt.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Generator interface {
	// GeneratePoem sends the prompt to the provider in a single attempt and
	// coerces the answer into a Poem.
	//
	// Every failure matches ErrProviderUnavailable.
	GeneratePoem(ctx context.Context, prompt string) (*domain.Poem, error)
}
