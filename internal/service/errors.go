package service

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned by constructors given a nil collaborator.
var ErrNilDependency = errors.New("required dependency is nil")

// PoetryServiceError wraps errors from the poetry service with context.
type PoetryServiceError struct {
	// Operation is the operation that failed (e.g., "generate_poem")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PoetryServiceError.
func (e *PoetryServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("poetry service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("poetry service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PoetryServiceError) Unwrap() error {
	return e.Err
}

// NewPoetryServiceError creates a new PoetryServiceError.
func NewPoetryServiceError(operation, message string, err error) *PoetryServiceError {
	return &PoetryServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
