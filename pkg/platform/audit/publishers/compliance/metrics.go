package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "punchclock/pkg/platform/audit"
)

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	EventsEmitted   *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec
	PersistDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		EventsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_audit_events_emitted_total",
			Help: "Total number of audit events persisted",
		}, []string{"action"}),
		PersistFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_audit_persist_failures_total",
			Help: "Total number of audit events that failed to persist",
		}, []string{"action"}),
		PersistDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "punchclock_audit_persist_duration_seconds",
			Help:    "Time spent writing an audit event",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

func (m *Metrics) IncEventsEmitted(action audit.Action) {
	if m == nil {
		return
	}
	m.EventsEmitted.WithLabelValues(string(action)).Inc()
}

func (m *Metrics) IncPersistFailures(action audit.Action) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(string(action)).Inc()
}

func (m *Metrics) ObservePersistDuration(seconds float64) {
	if m == nil {
		return
	}
	m.PersistDuration.Observe(seconds)
}
