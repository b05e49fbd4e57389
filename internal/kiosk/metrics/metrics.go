package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks kiosk identification outcomes and PIN lockouts.
type Metrics struct {
	AuthAttempts *prometheus.CounterVec
	PINLockouts  *prometheus.CounterVec
	PINScanSize  prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		AuthAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_kiosk_auth_attempts_total",
			Help: "Kiosk identification attempts, by method and outcome reason",
		}, []string{"method", "reason"}),
		PINLockouts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_kiosk_pin_lockouts_total",
			Help: "PIN attempts rejected by a lock, by scope",
		}, []string{"scope"}),
		PINScanSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "punchclock_kiosk_pin_roster_size",
			Help:    "Number of roster hashes compared per PIN attempt",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

func (m *Metrics) IncAuthAttempt(method, reason string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(method, reason).Inc()
}

func (m *Metrics) IncPINLockout(scope string) {
	if m == nil {
		return
	}
	m.PINLockouts.WithLabelValues(scope).Inc()
}

func (m *Metrics) ObserveScan(compared int) {
	if m == nil {
		return
	}
	m.PINScanSize.Observe(float64(compared))
}
