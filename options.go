package tinystore

type options struct {
	capacity         int
	metricsCollector MetricsCollector
	logger           *Logger
}

// DefaultQueryCacheCapacity bounds a QueryCache unless WithCapacity is
// given. Ten distinct queries cover typical table access patterns; raise it
// for workloads alternating between many predicates.
const DefaultQueryCacheCapacity = 10

// Option configures QueryCache construction.
type Option func(*options)

// WithCapacity sets the maximum number of cached query results. Zero
// disables retention entirely; a negative value is rejected at
// construction.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithMetricsCollector configures a metrics collector for cache hits,
// misses and evictions. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures the logger used for cache lifecycle events.
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}
