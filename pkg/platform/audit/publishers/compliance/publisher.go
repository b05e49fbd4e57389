// Package compliance provides the synchronous audit publisher.
//
// Emit writes the event to the store and returns only once the write has
// succeeded or failed. When ctx carries a transaction the write joins it, so a
// recorded punch and its audit row commit or roll back together.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/privacy"
	"punchclock/pkg/requestcontext"
)

// Publisher emits audit events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a publisher. The store should be outbox-backed in production.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit validates, enriches and persists event. A returned error means the
// event was not recorded.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	start := time.Now()

	if event.CompanyID.IsNil() {
		return errors.New("audit event requires CompanyID")
	}
	if event.Action == "" {
		return errors.New("audit event requires Action")
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.IP == "" {
		event.IP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncPersistFailures(event.Action)
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit persistence failed",
				"action", event.Action,
				"company_id", event.CompanyID.String(),
				"ip", privacy.AnonymizeIP(event.IP),
				"error", err,
			)
		}
		return fmt.Errorf("audit persistence failed: %w", err)
	}

	p.metrics.ObservePersistDuration(time.Since(start).Seconds())
	p.metrics.IncEventsEmitted(event.Action)
	return nil
}
