package recgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with recgo-specific helpers.
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

// LogLoad logs a load operation.
func (l *Logger) LogLoad(name string, count int, err error) {
	if err != nil {
		l.Error("load failed",
			"collection", name,
			"records", count,
			"error", err,
		)
	} else {
		l.Debug("load completed",
			"collection", name,
			"records", count,
		)
	}
}

// LogCreate logs a model creation.
func (l *Logger) LogCreate(name string, viaFactory bool, err error) {
	if err != nil {
		l.Error("create failed",
			"collection", name,
			"factory", viaFactory,
			"error", err,
		)
	} else {
		l.Debug("create completed",
			"collection", name,
			"factory", viaFactory,
		)
	}
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(name string, results int, err error) {
	if err != nil {
		l.Error("query failed",
			"collection", name,
			"error", err,
		)
	} else {
		l.Debug("query completed",
			"collection", name,
			"results", results,
		)
	}
}

// LogRemove logs a removal operation.
func (l *Logger) LogRemove(name string, removed int, err error) {
	if err != nil {
		l.Error("remove failed",
			"collection", name,
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"collection", name,
			"removed", removed,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op string, collections int, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"collections", collections,
		)
	}
}
