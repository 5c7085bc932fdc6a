package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/poetry-api/internal/platform/logger"
)

// SetTraceID adds a freshly generated trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}
