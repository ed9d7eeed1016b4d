package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Outcome label values of the runs counter.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeAborted = "aborted"
)

// DefaultNamespace prefixes every metric name unless WithNamespace overrides it.
const DefaultNamespace = "rulekit"

// Collector records validation runs as Prometheus metrics.
// It implements validator.Observer.
type Collector struct {
	runs       *prometheus.CounterVec
	failures   prometheus.Counter
	properties prometheus.Histogram
	duration   prometheus.Histogram
}

var _ validator.Observer = (*Collector)(nil)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric name prefix.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithDurationBuckets overrides the duration histogram buckets (seconds).
func WithDurationBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// NewCollector creates the metrics and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
// Registering twice on the same registerer panics, as with promauto.
func NewCollector(reg prometheus.Registerer, opts ...Option) *Collector {
	o := &options{
		namespace: DefaultNamespace,
		// Rule evaluation is in-memory; store lookups push runs to milliseconds.
		buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}
	for _, opt := range opts {
		opt(o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	return &Collector{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "validations_total",
			Help:      "Total number of validation runs by outcome",
		}, []string{"outcome"}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "validation_errors_total",
			Help:      "Total number of reported validation errors",
		}),
		properties: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "validation_properties",
			Help:      "Number of properties evaluated per validation run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of validation runs in seconds",
			Buckets:   o.buckets,
		}),
	}
}

// ObserveValidation records one validation run.
func (c *Collector) ObserveValidation(_ context.Context, s validator.Stats) {
	c.runs.WithLabelValues(outcome(s)).Inc()
	c.failures.Add(float64(s.Errors))
	c.properties.Observe(float64(s.Properties))
	c.duration.Observe(s.Duration.Seconds())
}

func outcome(s validator.Stats) string {
	switch {
	case s.Err != nil:
		return OutcomeAborted
	case s.Errors > 0:
		return OutcomeInvalid
	default:
		return OutcomeValid
	}
}
