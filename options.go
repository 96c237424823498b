package xdmfgo

import (
	"log/slog"

	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/storage"
)

type options struct {
	storage          storage.DataStorage
	metricsCollector MetricsCollector
	logger           *Logger
	fsys             fs.FileSystem
}

// Option configures TimeSeriesWriter construction.
type Option func(*options)

// WithStorage selects the heavy-data layout. The default is AsciiInline,
// which keeps everything in the document and leaves no auxiliary files.
func WithStorage(kind storage.DataStorage) Option {
	return func(o *options) {
		o.storage = kind
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &xdmfgo.BasicMetricsCollector{}
//	w, _ := xdmfgo.New("out/sim.xdmf2", xdmfgo.WithMetricsCollector(metrics))
//	// ... use w ...
//	stats := metrics.GetStats()
//	fmt.Printf("Steps: %d, Avg latency: %dns\n", stats.WriteDataCount, stats.WriteDataAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := xdmfgo.NewJSONLogger(slog.LevelInfo)
//	w, _ := xdmfgo.New("out/sim.xdmf2", xdmfgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// withFileSystem overrides the filesystem used for the document and the
// text backends. Tests use it to inject failures.
func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		storage:          storage.AsciiInline,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		fsys:             fs.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.fsys == nil {
		o.fsys = fs.Default
	}
	return o
}
