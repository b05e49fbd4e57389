package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"punchclock/pkg/platform/audit/store/postgres"
	"punchclock/pkg/platform/circuit"
)

// Outbox is the relay's view of the outbox table.
type Outbox interface {
	FetchPending(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, entryID uuid.UUID, at time.Time) error
}

// Producer publishes one serialized audit event.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Worker relays committed outbox rows to the audit topic. Rows are published
// in creation order and marked only after the broker acknowledges them, so a
// crash yields duplicates rather than gaps.
type Worker struct {
	outbox    Outbox
	producer  Producer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
	breaker   *circuit.Breaker
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

func WithInterval(d time.Duration) Option {
	return func(w *Worker) { w.interval = d }
}

func WithBatchSize(n int) Option {
	return func(w *Worker) { w.batchSize = n }
}

// WithBreaker replaces the breaker that pauses relaying while the broker
// keeps failing.
func WithBreaker(b *circuit.Breaker) Option {
	return func(w *Worker) { w.breaker = b }
}

func NewWorker(outbox Outbox, producer Producer, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		producer:  producer,
		logger:    slog.Default(),
		interval:  time.Second,
		batchSize: 100,
		breaker:   circuit.New("audit-relay"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !w.breaker.Allow() {
				continue
			}
			if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
				w.logger.WarnContext(ctx, "audit relay pass failed", "error", err)
			}
		}
	}
}

// RunOnce publishes one batch and returns how many entries were relayed.
// It stops at the first failure to preserve ordering.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	entries, err := w.outbox.FetchPending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}
	for i, entry := range entries {
		if err := w.producer.Publish(ctx, entry.AggregateID, entry.Payload); err != nil {
			if _, change := w.breaker.RecordFailure(); change.Opened {
				w.logger.ErrorContext(ctx, "audit relay paused, broker failing", "error", err)
			}
			return i, err
		}
		if _, change := w.breaker.RecordSuccess(); change.Closed {
			w.logger.InfoContext(ctx, "audit relay resumed")
		}
		if err := w.outbox.MarkPublished(ctx, entry.ID, time.Now()); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}
