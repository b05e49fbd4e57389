package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"punchclock/internal/timeclock/models"
	id "punchclock/pkg/domain"
)

// InMemory keeps punches in insertion order.
type InMemory struct {
	mu     sync.RWMutex
	events []models.Event
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

// LockEmployee is a no-op; the in-memory runner serializes whole transactions.
func (s *InMemory) LockEmployee(context.Context, id.EmployeeID) error {
	return nil
}

// ListBetween returns the employee's events with from <= ts <= to, oldest first.
func (s *InMemory) ListBetween(_ context.Context, companyID id.CompanyID, employeeID id.EmployeeID, from, to time.Time) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, e := range s.events {
		if e.CompanyID != companyID || e.EmployeeID != employeeID {
			continue
		}
		if e.Timestamp.Before(from) || e.Timestamp.After(to) {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b models.Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out, nil
}

// LastBetween is the latest event in [from, to], or the zero Last.
func (s *InMemory) LastBetween(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, from, to time.Time) (models.Last, error) {
	events, err := s.ListBetween(ctx, companyID, employeeID, from, to)
	if err != nil || len(events) == 0 {
		return models.Last{}, err
	}
	e := events[len(events)-1]
	return models.Last{Type: e.Type, At: e.Timestamp}, nil
}

// LatestPerEmployee returns each employee's last event in [from, to].
func (s *InMemory) LatestPerEmployee(_ context.Context, companyID id.CompanyID, from, to time.Time) (map[id.EmployeeID]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.EmployeeID]models.Event)
	for _, e := range s.events {
		if e.CompanyID != companyID || e.Timestamp.Before(from) || e.Timestamp.After(to) {
			continue
		}
		if cur, ok := out[e.EmployeeID]; ok && e.Timestamp.Before(cur.Timestamp) {
			continue
		}
		out[e.EmployeeID] = e
	}
	return out, nil
}
