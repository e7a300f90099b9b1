package gxhash

import (
	"log/slog"

	"github.com/hupe1980/gxhash/executor"
)

// DefaultOffloadThreshold is the input size at which HashAsync moves work
// to the runtime.
const DefaultOffloadThreshold = 4 << 20

type options struct {
	runtime          *executor.Runtime
	threshold        int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures hasher construction.
type Option func(*options)

// WithRuntime runs offloaded hashes on rt instead of the process-wide
// runtime. The hasher never closes rt.
func WithRuntime(rt *executor.Runtime) Option {
	return func(o *options) {
		o.runtime = rt
	}
}

// WithOffloadThreshold sets the input size, in bytes, from which HashAsync
// offloads. 0 offloads every call. Negative values are rejected by the
// constructor.
func WithOffloadThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &gxhash.BasicMetricsCollector{}
//	h, _ := gxhash.New64(0, gxhash.WithMetricsCollector(metrics))
//	// ... use h ...
//	stats := metrics.GetStats()
//	fmt.Printf("Offloaded: %d, Avg latency: %dns\n", stats.OffloadCount, stats.OffloadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
//	logger := gxhash.NewJSONLogger(slog.LevelDebug)
//	h, _ := gxhash.New128(7, gxhash.WithLogger(logger))
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

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        DefaultOffloadThreshold,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
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
	return o
}
