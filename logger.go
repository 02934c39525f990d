package neargo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with neargo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithShape adds rows/cols fields to the logger.
func (l *Logger) WithShape(rows, cols int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows, "cols", cols),
	}
}

// LogPairwise logs a dense pairwise computation.
func (l *Logger) LogPairwise(ctx context.Context, rows, cols, dim int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pairwise failed",
			"rows", rows,
			"cols", cols,
			"dimension", dim,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pairwise completed",
			"rows", rows,
			"cols", cols,
			"dimension", dim,
			"elapsed", elapsed,
		)
	}
}

// LogCondensed logs a triangular self-distance computation.
func (l *Logger) LogCondensed(ctx context.Context, rows, pairs int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "condensed failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "condensed completed",
			"rows", rows,
			"pairs", pairs,
			"elapsed", elapsed,
		)
	}
}

// LogPredict logs a classification pass.
func (l *Logger) LogPredict(ctx context.Context, k, rows int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed",
			"k", k,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "predict completed",
			"k", k,
			"rows", rows,
			"elapsed", elapsed,
		)
	}
}
