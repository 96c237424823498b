package xdmfgo

import (
	"log/slog"
	"os"

	"github.com/hupe1980/xdmfgo/mesh"
)

// Logger wraps slog.Logger so operations log consistent field names.
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

// WithPath adds the document path to the logger so every operation log can
// be traced to its file.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogWriteMesh logs a mesh write. Unreferenced points are legal but worth a
// warning; they usually mean the caller extracted a surface without
// renumbering.
func (l *Logger) LogWriteMesh(stats mesh.Stats, err error) {
	if err != nil {
		l.Error("write mesh failed",
			"points", stats.Points,
			"cells", stats.Cells,
			"error", err,
		)
		return
	}
	if stats.Unreferenced > 0 {
		l.Warn("mesh has unreferenced points",
			"points", stats.Points,
			"unreferenced", stats.Unreferenced,
		)
	}
	l.Debug("write mesh completed",
		"points", stats.Points,
		"cells", stats.Cells,
	)
}

// LogWriteData logs a time step write.
func (l *Logger) LogWriteData(time string, pointFields, cellFields int, err error) {
	if err != nil {
		l.Error("write data failed",
			"time", time,
			"error", err,
		)
	} else {
		l.Debug("write data completed",
			"time", time,
			"point_fields", pointFields,
			"cell_fields", cellFields,
		)
	}
}

// LogFlush logs a flush operation.
func (l *Logger) LogFlush(err error) {
	if err != nil {
		l.Error("flush failed", "error", err)
	} else {
		l.Debug("flush completed")
	}
}

// LogClose logs closing the writer.
func (l *Logger) LogClose(steps int, err error) {
	if err != nil {
		l.Error("close failed",
			"steps", steps,
			"error", err,
		)
	} else {
		l.Info("writer closed",
			"steps", steps,
		)
	}
}
