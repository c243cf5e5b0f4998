package recgo

import (
	"log/slog"

	"github.com/hupe1980/recgo/codec"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	idField          string
	valueIndexing    bool
}

// Option configures Store construction behavior.
type Option func(*options)

// WithCodec configures the codec used for parsing string payloads and for
// snapshot encoding.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithIDField configures the name of the identifier field records must
// carry. Defaults to "id".
func WithIDField(field string) Option {
	return func(o *options) {
		if field != "" {
			o.idField = field
		}
	}
}

// WithValueIndexing toggles the Roaring Bitmap inverted index over field
// values. Enabled by default; disable it for collections whose queries are
// identifier-only to save the index bookkeeping on every write.
func WithValueIndexing(enabled bool) Option {
	return func(o *options) {
		o.valueIndexing = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &recgo.BasicMetricsCollector{}
//	store := recgo.New(recgo.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := recgo.NewJSONLogger(slog.LevelInfo)
//	store := recgo.New(recgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		idField:          "id",
		valueIndexing:    true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
