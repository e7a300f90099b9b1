package gxhash

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with gxhash-specific field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler on stderr at info level.
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

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithWidth adds the hash width name.
func (l *Logger) WithWidth(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("width", name),
	}
}

// WithSeed adds the hasher seed.
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogHash logs an inline hash.
func (l *Logger) LogHash(ctx context.Context, size int) {
	l.DebugContext(ctx, "hash computed inline",
		"bytes", size,
	)
}

// LogOffload logs the outcome of handing a hash to the runtime.
func (l *Logger) LogOffload(ctx context.Context, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "offloaded hash failed",
			"bytes", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "hash offloaded",
			"bytes", size,
		)
	}
}

// LogBatch logs a HashMany call.
func (l *Logger) LogBatch(ctx context.Context, count, totalBytes int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch hash failed",
			"count", count,
			"bytes", totalBytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch hash completed",
			"count", count,
			"bytes", totalBytes,
		)
	}
}
