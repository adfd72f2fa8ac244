package bitmagic

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with aggregation-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is
// nil, uses the default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithOp adds an operation-name field to the logger (OR, AND, AND-SUB,
// SHIFT-RIGHT-AND).
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{Logger: l.Logger.With("op", op)}
}

// WithBlockCoord adds the (i, j) block coordinate currently being folded.
func (l *Logger) WithBlockCoord(i, j int) *Logger {
	return &Logger{Logger: l.Logger.With("top_block", i, "sub_block", j)}
}

// LogReduction logs a completed reduction call.
func (l *Logger) LogReduction(ctx context.Context, op string, sources int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reduction failed",
			"op", op,
			"sources", sources,
			"duration_ns", duration.Nanoseconds(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "reduction completed",
		"op", op,
		"sources", sources,
		"duration_ns", duration.Nanoseconds(),
	)
}
