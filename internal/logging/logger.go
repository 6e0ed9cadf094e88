// Package logging wraps log/slog with the field names used across parsort.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with sort-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger writing human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger writing JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// New builds a Logger from configuration strings: format is "text" or
// "json", level is any slog level name ("debug", "info", "warn", "error").
func New(w io.Writer, format, level string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextLogger(w, lvl), nil
	case "json":
		return NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// WithMode adds a mode field to the logger.
func (l *Logger) WithMode(mode string) *Logger {
	return &Logger{Logger: l.Logger.With("mode", mode)}
}

// WithSize adds the array size field to the logger.
func (l *Logger) WithSize(n int) *Logger {
	return &Logger{Logger: l.Logger.With("size", n)}
}

// LogThreadClamp logs that the requested thread count was reduced.
func (l *Logger) LogThreadClamp(ctx context.Context, requested, effective, size int) {
	l.WarnContext(ctx, "thread count reduced for small array",
		"requested", requested,
		"effective", effective,
		"size", size,
	)
}

// LogSort logs a completed or failed sort call.
func (l *Logger) LogSort(ctx context.Context, mode string, threads int, comparisons, swaps int64, elapsedMs float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sort failed",
			"mode", mode,
			"threads", threads,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "sort completed",
		"mode", mode,
		"threads", threads,
		"comparisons", comparisons,
		"swaps", swaps,
		"elapsed_ms", elapsedMs,
	)
}
