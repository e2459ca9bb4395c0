package arenatree

import (
	"log/slog"
	"os"

	"github.com/hupe1980/arenatree/arena"
)

// Logger wraps slog.Logger with arenatree-specific helpers.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithName adds a name field to the logger (useful to tell trees apart).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tree", name),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(offset uint64, keyLen, valueLen int, err error) {
	if err != nil {
		l.Error("insert failed",
			"error", err,
		)
	} else {
		l.Debug("insert completed",
			"offset", offset,
			"key_len", keyLen,
			"value_len", valueLen,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(key []byte, err error) {
	if err != nil {
		l.Debug("remove found nothing",
			"key", key,
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"key", key,
		)
	}
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(removed int) {
	l.Debug("tree cleared",
		"removed", removed,
	)
}

// LogClose logs the arena statistics of a closed tree.
func (l *Logger) LogClose(size int, stats arena.Stats) {
	l.Info("tree closed",
		"size", size,
		"allocs", stats.Allocs,
		"bytes_requested", stats.BytesRequested,
		"peak_committed", stats.PeakCommitted,
		"commits", stats.Commits,
		"decommits", stats.Decommits,
	)
}
