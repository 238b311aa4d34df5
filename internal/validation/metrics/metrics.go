package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation engine.
type Metrics struct {
	// Operation outcomes by kind and result ("valid", "invalid")
	Outcomes *prometheus.CounterVec

	// Failed checks by operation kind and check name
	CheckFailures *prometheus.CounterVec

	// Checks skipped for missing context, by operation kind and check name
	CheckSkips *prometheus.CounterVec

	// Time spent validating one operation
	ValidateLatency prometheus.Histogram

	// Size of validated batches
	BatchSize prometheus.Histogram
}

// New registers the validation metrics with reg. A nil reg uses the default
// Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govledger_validation_outcomes_total",
			Help: "Validated operations by kind and outcome",
		}, []string{"kind", "outcome"}),

		CheckFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govledger_validation_check_failures_total",
			Help: "Failed checks by operation kind and check",
		}, []string{"kind", "check"}),

		CheckSkips: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govledger_validation_check_skips_total",
			Help: "Checks skipped because the operation lacked their context",
		}, []string{"kind", "check"}),

		ValidateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govledger_validation_duration_seconds",
			Help:    "Duration of validating one operation",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "govledger_validation_batch_size",
			Help:    "Number of operations per validated batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// IncrementOutcome records one validated operation.
func (m *Metrics) IncrementOutcome(kind string, valid bool) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.Outcomes.WithLabelValues(kind, outcome).Inc()
}

// IncrementCheckFailure records one failed check.
func (m *Metrics) IncrementCheckFailure(kind, check string) {
	if m != nil {
		m.CheckFailures.WithLabelValues(kind, check).Inc()
	}
}

// IncrementCheckSkip records one skipped check.
func (m *Metrics) IncrementCheckSkip(kind, check string) {
	if m != nil {
		m.CheckSkips.WithLabelValues(kind, check).Inc()
	}
}

// ObserveValidateLatency records the duration of one validation.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
