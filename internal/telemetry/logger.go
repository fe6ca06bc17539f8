// Package telemetry provides structured logging for toolscan runs.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const runIDKey contextKey = "run_id"

// NewLogger creates a structured JSON logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// NewRunID generates a sortable unique identifier for one scan run.
func NewRunID() string {
	return ulid.Make().String()
}

// WithRunID adds a run ID to the context. If id is empty, a new one
// is generated.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRunID()
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunID retrieves the run ID from context, or "" if unset.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// RunLogger returns a logger with run-scoped fields attached.
func RunLogger(logger *slog.Logger, ctx context.Context) *slog.Logger {
	if id := RunID(ctx); id != "" {
		return logger.With(slog.String("run_id", id))
	}
	return logger
}
