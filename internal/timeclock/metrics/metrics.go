package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the time clock module.
// Tracks recorded and blocked punches and the punch critical path duration.
type Metrics struct {
	PunchesRecorded *prometheus.CounterVec
	PunchesBlocked  *prometheus.CounterVec
	PunchDuration   prometheus.Histogram
}

// New creates a Metrics instance with every time clock metric registered.
func New() *Metrics {
	return &Metrics{
		PunchesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_punches_recorded_total",
			Help: "Punches recorded, by source and method",
		}, []string{"source", "method"}),
		PunchesBlocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_punches_blocked_total",
			Help: "Punch attempts blocked by policy, by reason code",
		}, []string{"source", "reason"}),
		PunchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "punchclock_punch_duration_seconds",
			Help:    "Duration of Punch operations (resolution, sequencing and persistence)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncPunchRecorded(source, method string) {
	if m == nil {
		return
	}
	m.PunchesRecorded.WithLabelValues(source, method).Inc()
}

func (m *Metrics) IncPunchBlocked(source, reason string) {
	if m == nil {
		return
	}
	m.PunchesBlocked.WithLabelValues(source, reason).Inc()
}

// ObservePunch records the duration of a Punch call started at start.
func (m *Metrics) ObservePunch(start time.Time) {
	if m == nil {
		return
	}
	m.PunchDuration.Observe(time.Since(start).Seconds())
}
