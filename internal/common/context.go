package common

import (
	"context"
	"log/slog"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID    contextKey = "run_id"
	ContextKeyDocument contextKey = "document"
)

// WithRunID adds a batch run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the batch run ID from context
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return runID
	}
	return ""
}

// WithDocument adds the file name being processed to the context
func WithDocument(ctx context.Context, fileName string) context.Context {
	return context.WithValue(ctx, ContextKeyDocument, fileName)
}

// DocumentFromContext extracts the file name being processed from context
func DocumentFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyDocument).(string); ok {
		return name
	}
	return ""
}

// LoggerFrom returns logger enriched with the run and document carried by ctx.
func LoggerFrom(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if id := RunIDFromContext(ctx); id != "" {
		logger = logger.With("run_id", id)
	}
	if doc := DocumentFromContext(ctx); doc != "" {
		logger = logger.With("file", doc)
	}
	return logger
}
