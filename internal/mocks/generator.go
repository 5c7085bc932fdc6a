package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/poetry-api/internal/domain"
	"github.com/phrazzld/poetry-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GeneratePoemFn allows test cases to mock the GeneratePoem behavior
	GeneratePoemFn func(ctx context.Context, prompt string) (*domain.Poem, error)

	// Default response values
	Poem *domain.Poem
	Err  error

	// Call tracking for verification
	GeneratePoemCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GeneratePoem was called
		Count int

		// Prompts contains all prompts passed to GeneratePoem calls
		Prompts []string
	}
}

// GeneratePoem implements the generation.Generator interface
func (m *MockGenerator) GeneratePoem(ctx context.Context, prompt string) (*domain.Poem, error) {
	m.GeneratePoemCalls.mu.Lock()
	m.GeneratePoemCalls.Count++
	m.GeneratePoemCalls.Prompts = append(m.GeneratePoemCalls.Prompts, prompt)
	m.GeneratePoemCalls.mu.Unlock()

	if m.GeneratePoemFn != nil {
		return m.GeneratePoemFn(ctx, prompt)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	// Hand out a copy so callers cannot mutate the shared default.
	if m.Poem == nil {
		return nil, nil
	}
	poem := *m.Poem
	return &poem, nil
}

// CallCount returns the number of GeneratePoem calls so far.
func (m *MockGenerator) CallCount() int {
	m.GeneratePoemCalls.mu.Lock()
	defer m.GeneratePoemCalls.mu.Unlock()
	return m.GeneratePoemCalls.Count
}

// LastPrompt returns the prompt of the most recent call, or "".
func (m *MockGenerator) LastPrompt() string {
	m.GeneratePoemCalls.mu.Lock()
	defer m.GeneratePoemCalls.mu.Unlock()
	if len(m.GeneratePoemCalls.Prompts) == 0 {
		return ""
	}
	return m.GeneratePoemCalls.Prompts[len(m.GeneratePoemCalls.Prompts)-1]
}

// NewMockGeneratorWithPoem creates a MockGenerator that returns the specified poem
func NewMockGeneratorWithPoem(poem *domain.Poem) *MockGenerator {
	return &MockGenerator{
		Poem: poem,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// NewMockGeneratorWithDefaultPoem creates a MockGenerator with a sample autumn haiku
func NewMockGeneratorWithDefaultPoem() *MockGenerator {
	return &MockGenerator{
		Poem: &domain.Poem{
			Title:   "Autumn Descent",
			Content: "Crimson leaves descend\nwhispering to the cold earth\nautumn says goodbye",
			Genre:   "nature",
			Theme:   "autumn",
		},
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a provider communication failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: generation.NewProviderError("mock", errors.New("connection refused")),
	}
}

// MockGeneratorWithInvalidResponse creates a MockGenerator that simulates an
// answer that could not be coerced into a poem
func MockGeneratorWithInvalidResponse() *MockGenerator {
	return &MockGenerator{
		Err: generation.NewProviderError("mock", generation.ErrInvalidResponse),
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GeneratePoemCalls.mu.Lock()
	defer m.GeneratePoemCalls.mu.Unlock()

	m.GeneratePoemCalls.Count = 0
	m.GeneratePoemCalls.Prompts = nil
}

var _ generation.Generator = (*MockGenerator)(nil)
