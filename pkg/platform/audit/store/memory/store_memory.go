package memory

import (
	"context"
	"sync"
	"time"

	id "punchclock/pkg/domain"
	audit "punchclock/pkg/platform/audit"
)

// InMemoryStore keeps audit events for memory-mode runs and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByCompany returns the company's events in append order.
func (s *InMemoryStore) ListByCompany(_ context.Context, companyID id.CompanyID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

// CountByActor tallies action events for the company with from <= ts < to.
func (s *InMemoryStore) CountByActor(_ context.Context, companyID id.CompanyID, action audit.Action, from, to time.Time) (audit.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tally := audit.Tally{ByActor: make(map[id.UserID]int)}
	for _, e := range s.events {
		if e.CompanyID != companyID || e.Action != action {
			continue
		}
		if e.Timestamp.Before(from) || !e.Timestamp.Before(to) {
			continue
		}
		tally.Total++
		if !e.ActorID.IsNil() {
			tally.ByActor[e.ActorID]++
		}
	}
	return tally, nil
}
