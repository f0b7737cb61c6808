package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordLabels(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePollTick("balances", "ok")
	m.ObservePollTick("balances", "ok")
	m.ObservePollTick("staking", "")
	m.SetPollPaused("deployment", 2)
	m.ObserveLifecycleOp("start", "error")
	m.ObserveDenial("migrate", "no_available_slots")
	m.ObserveStoreReplaced("balances")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pollTicks.WithLabelValues("balances", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pollTicks.WithLabelValues("staking", "unknown")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pollPaused.WithLabelValues("deployment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lifecycleOps.WithLabelValues("start", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.denials.WithLabelValues("migrate", "no_available_slots")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeReplaced.WithLabelValues("balances")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObservePollTick("balances", "ok")
		m.SetPollPaused("balances", 1)
		m.ObserveLifecycleOp("stop", "ok")
		m.ObserveDenial("start", "loading")
		m.ObserveStoreReplaced("staking")
	})
}
