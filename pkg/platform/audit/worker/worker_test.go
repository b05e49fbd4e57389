package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/pkg/platform/audit/store/postgres"
	"punchclock/pkg/platform/circuit"
)

type fakeOutbox struct {
	mu        sync.Mutex
	pending   []postgres.OutboxEntry
	published []uuid.UUID
}

func (f *fakeOutbox) FetchPending(_ context.Context, limit int) ([]postgres.OutboxEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []postgres.OutboxEntry
	for _, e := range f.pending {
		done := false
		for _, p := range f.published {
			if p == e.ID {
				done = true
			}
		}
		if !done && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, entryID uuid.UUID, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, entryID)
	return nil
}

type fakeProducer struct {
	failOn int
	calls  int
	keys   []string
}

func (p *fakeProducer) Publish(_ context.Context, key string, _ []byte) error {
	p.calls++
	if p.failOn > 0 && p.calls == p.failOn {
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, key)
	return nil
}

func entries(n int) []postgres.OutboxEntry {
	out := make([]postgres.OutboxEntry, n)
	for i := range n {
		out[i] = postgres.OutboxEntry{ID: uuid.New(), AggregateID: "company-" + string(rune('a'+i)), Payload: []byte(`{}`)}
	}
	return out
}

func TestRunOnce(t *testing.T) {
	t.Run("publishes and marks every pending entry", func(t *testing.T) {
		outbox := &fakeOutbox{pending: entries(3)}
		producer := &fakeProducer{}
		w := NewWorker(outbox, producer)

		n, err := w.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"company-a", "company-b", "company-c"}, producer.keys)

		n, err = w.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("stops at first publish failure without marking", func(t *testing.T) {
		outbox := &fakeOutbox{pending: entries(3)}
		w := NewWorker(outbox, &fakeProducer{failOn: 2})

		n, err := w.RunOnce(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Len(t, outbox.published, 1)
	})

	t.Run("respects batch size", func(t *testing.T) {
		outbox := &fakeOutbox{pending: entries(5)}
		w := NewWorker(outbox, &fakeProducer{}, WithBatchSize(2))

		n, err := w.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestRunOnce_OpensBreakerOnRepeatedFailures(t *testing.T) {
	outbox := &fakeOutbox{pending: entries(1)}
	breaker := circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	w := NewWorker(outbox, &fakeProducer{failOn: 1}, WithBreaker(breaker))

	_, err := w.RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, breaker.Allow())

	w.producer = &fakeProducer{failOn: 1}
	_, err = w.RunOnce(context.Background())
	require.Error(t, err)
	assert.False(t, breaker.Allow(), "relay pauses after consecutive failures")
	assert.Empty(t, outbox.published)
}
