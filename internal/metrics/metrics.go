package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	pollTicks     *prometheus.CounterVec
	pollPaused    *prometheus.GaugeVec
	lifecycleOps  *prometheus.CounterVec
	denials       *prometheus.CounterVec
	storeReplaced *prometheus.CounterVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide metrics registered on the default
// Prometheus registerer.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pollTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentctl_poll_ticks_total",
			Help: "Poll loop ticks by store kind and result.",
		}, []string{"kind", "result"}),
		pollPaused: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "agentctl_poll_paused",
			Help: "Outstanding pause requests per poll loop.",
		}, []string{"kind"}),
		lifecycleOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentctl_lifecycle_operations_total",
			Help: "Lifecycle operations by kind and result.",
		}, []string{"op", "result"}),
		denials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentctl_eligibility_denials_total",
			Help: "Actions rejected by the eligibility rules, by action and reason.",
		}, []string{"action", "reason"}),
		storeReplaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentctl_store_replacements_total",
			Help: "Snapshot store replacements by store kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.pollTicks, m.pollPaused, m.lifecycleOps, m.denials, m.storeReplaced)
	}
	return m
}

func (m *Metrics) ObservePollTick(kind, result string) {
	if m == nil {
		return
	}
	m.pollTicks.WithLabelValues(labelOrUnknown(kind), labelOrUnknown(result)).Inc()
}

func (m *Metrics) SetPollPaused(kind string, count int) {
	if m == nil {
		return
	}
	m.pollPaused.WithLabelValues(labelOrUnknown(kind)).Set(float64(count))
}

func (m *Metrics) ObserveLifecycleOp(op, result string) {
	if m == nil {
		return
	}
	m.lifecycleOps.WithLabelValues(labelOrUnknown(op), labelOrUnknown(result)).Inc()
}

func (m *Metrics) ObserveDenial(action, reason string) {
	if m == nil {
		return
	}
	m.denials.WithLabelValues(labelOrUnknown(action), labelOrUnknown(reason)).Inc()
}

func (m *Metrics) ObserveStoreReplaced(kind string) {
	if m == nil {
		return
	}
	m.storeReplaced.WithLabelValues(labelOrUnknown(kind)).Inc()
}

func labelOrUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
