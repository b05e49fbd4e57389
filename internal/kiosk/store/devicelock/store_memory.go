package devicelock

import (
	"context"
	"sync"
	"time"

	"punchclock/internal/kiosk/models"
)

// InMemory keeps device lock state in process memory. Entries idle for longer
// than the TTL are dropped when their key is next touched; there is no sweeper.
type InMemory struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[models.DeviceKey]models.DeviceLockState
}

func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{
		ttl:    ttl,
		states: make(map[models.DeviceKey]models.DeviceLockState),
	}
}

func (s *InMemory) Get(_ context.Context, key models.DeviceKey, now time.Time) (models.DeviceLockState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(key, now), nil
}

// Update applies fn to the key's state under the store lock and saves the result.
func (s *InMemory) Update(_ context.Context, key models.DeviceKey, now time.Time, fn func(*models.DeviceLockState)) (models.DeviceLockState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load(key, now)
	fn(&state)
	s.states[key] = state
	return state, nil
}

func (s *InMemory) Delete(_ context.Context, key models.DeviceKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
	return nil
}

// Len reports how many keys are held, including idle ones not yet evicted.
func (s *InMemory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

func (s *InMemory) load(key models.DeviceKey, now time.Time) models.DeviceLockState {
	state, ok := s.states[key]
	if ok && state.IdleAt(now, s.ttl) {
		delete(s.states, key)
		return models.DeviceLockState{}
	}
	return state
}
