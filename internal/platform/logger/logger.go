package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/poetry-api/internal/config"
)

type contextKey string

const (
	loggerKey  contextKey = "logger"
	traceIDKey contextKey = "trace_id"
)

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger on stdout with
// the appropriate log level and sets it as the default logger for the application.
// Unknown level names are rejected.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	if _, ok := levelFromName(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return SetupWithWriter(os.Stdout, cfg.LogLevel), nil
}

// SetupWithWriter builds the JSON logger writing to w and installs it as the default.
func SetupWithWriter(w io.Writer, logLevel string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))

	// Allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// Unknown names fall back to info with a warning on stderr.
func ParseLevel(logLevel string) slog.Level {
	if level, ok := levelFromName(logLevel); ok {
		return level
	}

	tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tmpLogger.Warn("invalid log level configured, using default level",
		"configured_level", logLevel,
		"default_level", "info")
	return slog.LevelInfo
}

func levelFromName(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	l, _ := ctx.Value(loggerKey).(*slog.Logger)
	return l
}

// FromContextOrDefault returns the logger stored in ctx, falling back to def
// and then to slog.Default.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	if def != nil {
		return def
	}
	return slog.Default()
}

// WithTraceID returns a copy of ctx carrying the request trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
