package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys used by this package.
type contextKey int

const (
	operationIDKey contextKey = iota
)

// WithOperationID returns a new context carrying the given operation ID.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

// NewOperationContext derives a context with a freshly generated operation
// ID. Each UI action and CLI command runs under its own ID so the statements
// it issued can be grouped in the log file.
func NewOperationContext(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return WithOperationID(parent, uuid.NewString())
}

// OperationIDFromContext extracts the operation ID from the context.
// Returns empty string if none is set.
func OperationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(operationIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFromContext returns the default logger annotated with the context's
// operation ID, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := OperationIDFromContext(ctx); id != "" {
		logger = logger.With(KeyOperationID, id)
	}
	return logger
}
