package store

import (
	"context"
	"sync"

	"punchclock/internal/settings/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
)

// InMemory keeps company settings in a map. Values are copied in and out so
// callers never share a *Settings with the store.
type InMemory struct {
	mu       sync.RWMutex
	settings map[id.CompanyID]models.Settings
}

func NewInMemory() *InMemory {
	return &InMemory{settings: make(map[id.CompanyID]models.Settings)}
}

func (s *InMemory) FindByCompany(_ context.Context, companyID id.CompanyID) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settings[companyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &st, nil
}

func (s *InMemory) CreateIfAbsent(_ context.Context, settings *models.Settings) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.settings[settings.CompanyID]; ok {
		return &existing, nil
	}
	s.settings[settings.CompanyID] = *settings
	created := *settings
	return &created, nil
}

func (s *InMemory) Save(_ context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settings[settings.CompanyID]; !ok {
		return sentinel.ErrNotFound
	}
	s.settings[settings.CompanyID] = *settings
	return nil
}

func (s *InMemory) SetSecretIfEmpty(_ context.Context, companyID id.CompanyID, secret string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settings[companyID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	if st.QRSecret == "" {
		st.QRSecret = secret
		s.settings[companyID] = st
	}
	return st.QRSecret, nil
}

func (s *InMemory) ReplaceSecret(_ context.Context, companyID id.CompanyID, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settings[companyID]
	if !ok {
		return sentinel.ErrNotFound
	}
	st.QRSecret = secret
	s.settings[companyID] = st
	return nil
}
