package bitmagic

import "github.com/shk656461/BitMagic/aggregator"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	pool             *aggregator.Pool
}

// Option configures an Aggregator constructor.
type Option func(*options)

// WithLogger configures structured logging for reduction calls. Pass nil
// to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics configures a metrics collector for reduction calls. Pass
// nil to disable metrics collection.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) { o.metricsCollector = mc }
}

// WithPool configures an Aggregator to check its underlying
// *aggregator.Aggregator out of the given bounded pool at construction
// and back in on Close, instead of owning one for its own exclusive
// lifetime.
func WithPool(pool *aggregator.Pool) Option {
	return func(o *options) { o.pool = pool }
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
