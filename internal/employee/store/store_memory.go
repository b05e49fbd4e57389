package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"punchclock/internal/employee/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
)

// InMemory stores employee profiles in a map keyed by employee ID.
type InMemory struct {
	mu        sync.RWMutex
	employees map[id.EmployeeID]models.Profile
}

func NewInMemory() *InMemory {
	return &InMemory{employees: make(map[id.EmployeeID]models.Profile)}
}

func (s *InMemory) Create(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[profile.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, p := range s.employees {
		if p.CompanyID != profile.CompanyID {
			continue
		}
		if p.UserID == profile.UserID || (profile.Email != "" && strings.EqualFold(p.Email, profile.Email)) {
			return sentinel.ErrConflict
		}
	}
	s.employees[profile.ID] = *profile
	return nil
}

// List returns the company's profiles, newest first.
func (s *InMemory) List(_ context.Context, companyID id.CompanyID) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Profile
	for _, p := range s.employees {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Profile) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

// Update writes the profile's name and active flag.
func (s *InMemory) Update(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.employees[profile.ID]
	if !ok || p.CompanyID != profile.CompanyID {
		return sentinel.ErrNotFound
	}
	p.FullName = profile.FullName
	p.IsActive = profile.IsActive
	s.employees[profile.ID] = p
	return nil
}

func (s *InMemory) FindByID(_ context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.employees[employeeID]
	if !ok || p.CompanyID != companyID {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemory) FindByUser(_ context.Context, companyID id.CompanyID, userID id.UserID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.employees {
		if p.CompanyID == companyID && p.UserID == userID {
			return &p, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListPINRoster returns active employees with a PIN, ordered by name then ID
// so the scan order is stable.
func (s *InMemory) ListPINRoster(_ context.Context, companyID id.CompanyID) ([]models.PINCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PINCandidate
	for _, p := range s.employees {
		if p.CompanyID != companyID || !p.CanPunch() || p.PINHash == "" {
			continue
		}
		out = append(out, models.PINCandidate{
			EmployeeID:     p.ID,
			UserID:         p.UserID,
			FullName:       p.FullName,
			Email:          p.Email,
			PINHash:        p.PINHash,
			PINLockedUntil: p.PINLockedUntil,
		})
	}
	slices.SortFunc(out, func(a, b models.PINCandidate) int {
		if c := strings.Compare(a.FullName, b.FullName); c != 0 {
			return c
		}
		return strings.Compare(a.EmployeeID.String(), b.EmployeeID.String())
	})
	return out, nil
}

func (s *InMemory) SetPINHash(_ context.Context, companyID id.CompanyID, employeeID id.EmployeeID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.employees[employeeID]
	if !ok || p.CompanyID != companyID {
		return sentinel.ErrNotFound
	}
	p.PINHash = hash
	p.PINFailedAttempts = 0
	p.PINLockedUntil = nil
	s.employees[employeeID] = p
	return nil
}

func (s *InMemory) ResetPINLock(_ context.Context, employeeID id.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.employees[employeeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.PINFailedAttempts = 0
	p.PINLockedUntil = nil
	s.employees[employeeID] = p
	return nil
}
