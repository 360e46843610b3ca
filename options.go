package rankgo

import (
	"log/slog"

	"github.com/hupe1980/rankgo/model"
	"github.com/hupe1980/rankgo/order"
)

type options struct {
	order         order.Order
	sortSlot      model.Slot
	collapseSlot  model.Slot
	collapseMax   uint
	cutoff        int
	first         int
	maxItems      int
	maxWeightHint float64
	logger        *Logger
	metrics       MetricsCollector
}

// Option configures an Enquire.
type Option func(*options)

// WithSort configures the sort order of the match. slot names the value slot
// holding the sort key for value-based orders; pass model.NoSlot for pure
// relevance ranking.
func WithSort(o order.Order, slot model.Slot) Option {
	return func(opts *options) {
		opts.order = o
		opts.sortSlot = slot
	}
}

// WithCollapse enables collapsing on the value in slot, keeping up to
// collapseMax results per distinct key value. collapseMax 0 disables
// collapsing.
func WithCollapse(slot model.Slot, collapseMax uint) Option {
	return func(opts *options) {
		opts.collapseSlot = slot
		opts.collapseMax = collapseMax
	}
}

// WithCutoff excludes results scoring under percent (inclusive cutoff:
// results at exactly percent survive). Not supported together with
// value-primary sort orders; Run fails with ErrPercentCutoffNotSupported.
func WithCutoff(percent int) Option {
	return func(opts *options) {
		opts.cutoff = percent
	}
}

// WithPaging selects the result window [first, first+maxItems) of the ranked
// match. Percentages are independent of the window requested.
func WithPaging(first, maxItems int) Option {
	return func(opts *options) {
		opts.first = first
		opts.maxItems = maxItems
	}
}

// WithMaxWeightHint supplies an upper bound on the weight the stream can
// attain (e.g. from an external posting source). When it exceeds the best
// weight actually seen, percentages are scaled against the hint and the best
// result reports less than 100%.
func WithMaxWeightHint(wt float64) Option {
	return func(opts *options) {
		opts.maxWeightHint = wt
	}
}

// WithLogger configures structured logging for match runs.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(opts *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		opts.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(opts *options) {
		opts.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for match runs.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(opts *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		opts.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		sortSlot:     model.NoSlot,
		collapseSlot: model.NoSlot,
		maxItems:     10,
		logger:       NoopLogger(),
		metrics:      NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
