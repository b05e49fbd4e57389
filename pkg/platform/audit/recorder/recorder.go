// Package recorder is the audit entry point used by the punch and kiosk
// services. Every event is logged as an audit line and handed to the
// configured emitter.
//
// Two write modes exist:
//   - Record fails closed. Use it inside the transaction that persists the
//     audited change, so a lost audit row rolls the change back.
//   - RecordBlocked is synchronous but best-effort. A denied attempt has no
//     change to roll back, so a failed write is logged and counted and the
//     caller still returns its block.
package recorder

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/privacy"
	"punchclock/pkg/requestcontext"
)

// Emitter persists one audit event.
type Emitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Metrics counts blocked-attempt audits that could not be written.
type Metrics struct {
	BlockedDropped *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		BlockedDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_audit_blocked_dropped_total",
			Help: "Blocked-attempt audit events that failed to persist",
		}, []string{"action"}),
	}
}

func (m *Metrics) IncBlockedDropped(action audit.Action) {
	if m == nil {
		return
	}
	m.BlockedDropped.WithLabelValues(string(action)).Inc()
}

type Recorder struct {
	emitter Emitter
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Recorder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Recorder) {
		r.metrics = m
	}
}

// New wraps emitter. A nil emitter only logs.
func New(emitter Emitter, opts ...Option) *Recorder {
	r := &Recorder{emitter: emitter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record logs and persists event, returning the persistence error.
func (r *Recorder) Record(ctx context.Context, event audit.Event) error {
	r.log(ctx, event)
	if r.emitter == nil {
		return nil
	}
	return r.emitter.Emit(ctx, event)
}

// RecordBlocked logs and persists event without failing the caller.
func (r *Recorder) RecordBlocked(ctx context.Context, event audit.Event) {
	if event.Outcome == "" {
		event.Outcome = audit.OutcomeBlocked
	}
	if err := r.Record(ctx, event); err != nil {
		r.metrics.IncBlockedDropped(event.Action)
		if r.logger != nil {
			r.logger.WarnContext(ctx, "blocked attempt audit dropped",
				"action", event.Action,
				"company_id", event.CompanyID.String(),
				"reason", event.Reason,
				"error", err,
			)
		}
	}
}

func (r *Recorder) log(ctx context.Context, event audit.Event) {
	if r.logger == nil {
		return
	}
	args := []any{
		"event", string(event.Action),
		"log_type", "audit",
		"category", string(event.Category()),
		"company_id", event.CompanyID.String(),
		"outcome", string(event.Outcome),
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if event.Reason != "" {
		args = append(args, "reason", event.Reason)
	}
	if event.EmployeeID != "" {
		args = append(args, "employee_id", event.EmployeeID)
	}
	ip := event.IP
	if ip == "" {
		ip = requestcontext.ClientIP(ctx)
	}
	if ip != "" {
		args = append(args, "ip", privacy.AnonymizeIP(ip))
	}
	r.logger.InfoContext(ctx, string(event.Action), args...)
}
