package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementOutcome("journal-entry", true)
	m.IncrementOutcome("journal-entry", false)
	m.IncrementOutcome("journal-entry", false)
	m.IncrementCheckFailure("journal-entry", "balance")
	m.IncrementCheckSkip("expense-moment", "availability")
	m.ObserveValidateLatency(50 * time.Microsecond)
	m.ObserveBatchSize(12)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Outcomes.WithLabelValues("journal-entry", "valid")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Outcomes.WithLabelValues("journal-entry", "invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CheckFailures.WithLabelValues("journal-entry", "balance")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CheckSkips.WithLabelValues("expense-moment", "availability")), 0)

	count, err := testutil.GatherAndCount(reg, "govledger_validation_duration_seconds", "govledger_validation_batch_size")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementOutcome("journal-entry", true)
		m.IncrementCheckFailure("journal-entry", "balance")
		m.IncrementCheckSkip("journal-entry", "balance")
		m.ObserveValidateLatency(time.Millisecond)
		m.ObserveBatchSize(3)
	})
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "duplicate registration must not go unnoticed")
}
