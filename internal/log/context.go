package log

import (
	"context"
	"log/slog"
)

// ContextKey is the type used for logger context keys.
type ContextKey string

// LoggerContextKey carries the request-scoped logger through a request.
const LoggerContextKey ContextKey = "logger"

// FromContext returns the logger stored in ctx, or a default-backed logger
// when none was attached.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}
