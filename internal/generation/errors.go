package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrProviderUnavailable is the single error kind surfaced to callers for any
	// failure originating from the external provider.
	ErrProviderUnavailable = errors.New("language model provider unavailable")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ProviderError records a failure talking to a provider.
// It unwraps to the underlying cause and always matches ErrProviderUnavailable.
type ProviderError struct {
	Provider string
	Err      error
}

// NewProviderError wraps err as a ProviderError for the named provider.
// An error that already is a ProviderError is returned unchanged.
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return err
	}
	return &ProviderError{Provider: provider, Err: err}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrProviderUnavailable, e.Provider, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrProviderUnavailable) hold for every ProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderUnavailable
}
