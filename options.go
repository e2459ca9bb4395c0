package arenatree

import (
	"log/slog"

	"github.com/hupe1980/arenatree/resource"
)

// DefaultCapacity is the arena capacity used when WithCapacity is not given.
// Only address space is reserved up front; pages are committed on demand.
const DefaultCapacity = 64 << 20

type options struct {
	capacity         uint64
	pageSize         uint64
	alignment        uint64
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Tree.
type Option func(*options)

// WithCapacity sets the number of bytes of address space reserved for the
// tree's arena. Inserting beyond it panics.
func WithCapacity(capacity uint64) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithPageSize sets the arena's commit granularity. It must be a power of two
// and a multiple of the operating system page size. Defaults to the OS page
// size.
func WithPageSize(size uint64) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithAlignment sets the arena's default alignment for key and value bytes.
func WithAlignment(align uint64) Option {
	return func(o *options) {
		o.alignment = align
	}
}

// WithResourceController charges every page the arena commits against rc's
// memory budget. A commit that exceeds the budget panics.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 256 << 20})
//	t, _ := arenatree.New(nil, arenatree.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &arenatree.BasicMetricsCollector{}
//	t, _ := arenatree.New(nil, arenatree.WithMetricsCollector(metrics))
//	// ... use t ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg latency: %dns\n", stats.InsertCount, stats.InsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Arena commit and decommit events are logged through it as well.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := arenatree.NewJSONLogger(slog.LevelDebug)
//	t, _ := arenatree.New(nil, arenatree.WithLogger(logger))
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
		capacity:         DefaultCapacity,
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
