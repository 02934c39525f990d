package neargo

// Strategy selects how the engine fills a dense distance matrix.
type Strategy int

const (
	// StrategyFused sweeps each output row with a fused batch kernel over
	// the flattened target array. Default.
	StrategyFused Strategy = iota
	// StrategyNaive invokes the scalar distance function for every row pair.
	// Slower; kept as the correctness reference.
	StrategyNaive
)

func (s Strategy) String() string {
	switch s {
	case StrategyFused:
		return "Fused"
	case StrategyNaive:
		return "Naive"
	default:
		return "Unknown"
	}
}

type options struct {
	strategy   Strategy
	numWorkers int
	logger     *Logger
	metrics    MetricsCollector
}

func defaultOptions() options {
	return options{
		strategy:   StrategyFused,
		numWorkers: 1,
		logger:     NoopLogger(),
		metrics:    NoopMetricsCollector{},
	}
}

// Option configures an Engine.
type Option func(*options)

// WithStrategy selects the dense fill strategy. All strategies produce
// identical results up to floating-point rounding.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithNumWorkers shards output rows across n goroutines. Each worker owns a
// disjoint row range of the output buffer, so results do not depend on the
// worker count.
//
// n <= 0 means one worker per available CPU; the default is 1 (sequential).
func WithNumWorkers(n int) Option {
	return func(o *options) {
		o.numWorkers = n
	}
}

// WithLogger sets the logger used for per-operation debug logging.
// The default discards all output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after each operation.
// The default is a no-op.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
