package rankgo

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"time"
)

// Logger wraps slog.Logger with rankgo-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(math.MaxInt32),
		})),
	}
}

// WithSlot adds a value slot field to the logger.
func (l *Logger) WithSlot(slot uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("slot", slot),
	}
}

// WithShards adds a shard count field to the logger.
func (l *Logger) WithShards(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("shards", n),
	}
}

// LogMatch logs the completion of one match run.
func (l *Logger) LogMatch(ctx context.Context, considered, returned int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "match failed",
			"considered", considered,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "match completed",
			"considered", considered,
			"returned", returned,
			"duration", duration,
		)
	}
}

// LogCollapse logs the collapse statistics of one match run.
func (l *Logger) LogCollapse(ctx context.Context, entries, dupsIgnored, noKey uint32) {
	l.DebugContext(ctx, "collapse completed",
		"entries", entries,
		"dups_ignored", dupsIgnored,
		"no_collapse_key", noKey,
	)
}

// LogSnapshot logs a snapshot save or load operation.
func (l *Logger) LogSnapshot(ctx context.Context, op string, shards int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"shards", shards,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"shards", shards,
		)
	}
}
