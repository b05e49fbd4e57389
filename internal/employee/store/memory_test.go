package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"punchclock/internal/employee/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
)

type EmployeeStoreSuite struct {
	suite.Suite
	store   *InMemory
	ctx     context.Context
	company id.CompanyID
}

func TestEmployeeStoreSuite(t *testing.T) {
	suite.Run(t, new(EmployeeStoreSuite))
}

func (s *EmployeeStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.company = id.CompanyID(uuid.New())
}

func (s *EmployeeStoreSuite) add(name, pinHash string, active bool) *models.Profile {
	p := &models.Profile{
		ID:         id.EmployeeID(uuid.New()),
		CompanyID:  s.company,
		UserID:     id.UserID(uuid.New()),
		FullName:   name,
		IsActive:   active,
		UserActive: true,
		PINHash:    pinHash,
	}
	s.Require().NoError(s.store.Create(s.ctx, p))
	return p
}

func (s *EmployeeStoreSuite) TestRosterFiltersAndOrders() {
	s.add("Carla", "h3", true)
	s.add("Ana", "h1", true)
	s.add("Bruno", "", true)
	s.add("Davi", "h4", false)

	roster, err := s.store.ListPINRoster(s.ctx, s.company)
	s.Require().NoError(err)
	s.Require().Len(roster, 2)
	s.Equal("Ana", roster[0].FullName)
	s.Equal("Carla", roster[1].FullName)
}

func (s *EmployeeStoreSuite) TestTenantIsolation() {
	p := s.add("Ana", "h1", true)

	_, err := s.store.FindByID(s.ctx, id.CompanyID(uuid.New()), p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	roster, err := s.store.ListPINRoster(s.ctx, id.CompanyID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(roster)
}

func (s *EmployeeStoreSuite) TestPINUpdatesClearLock() {
	p := s.add("Ana", "h1", true)
	until := time.Now().Add(time.Hour)
	p.PINFailedAttempts = 3
	p.PINLockedUntil = &until
	s.store.employees[p.ID] = *p

	s.Run("reset clears counters", func() {
		s.Require().NoError(s.store.ResetPINLock(s.ctx, p.ID))
		found, err := s.store.FindByID(s.ctx, s.company, p.ID)
		s.Require().NoError(err)
		s.Zero(found.PINFailedAttempts)
		s.Nil(found.PINLockedUntil)
	})

	s.Run("set hash replaces hash", func() {
		s.Require().NoError(s.store.SetPINHash(s.ctx, s.company, p.ID, "new"))
		found, err := s.store.FindByUser(s.ctx, s.company, p.UserID)
		s.Require().NoError(err)
		s.Equal("new", found.PINHash)
	})
}

func (s *EmployeeStoreSuite) TestCreateConflicts() {
	p := s.add("Ana", "", true)
	dup := *p
	dup.ID = id.EmployeeID(uuid.New())
	s.ErrorIs(s.store.Create(s.ctx, &dup), sentinel.ErrConflict)
}

func (s *EmployeeStoreSuite) TestEmailConflictsIgnoreCase() {
	p := s.add("Ana", "", true)
	p.Email = "ana@example.com"
	s.store.employees[p.ID] = *p

	dup := &models.Profile{ID: id.EmployeeID(uuid.New()), CompanyID: s.company, UserID: id.UserID(uuid.New()), Email: "ANA@example.com"}
	s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrConflict)

	dup.CompanyID = id.CompanyID(uuid.New())
	s.NoError(s.store.Create(s.ctx, dup))
}

func (s *EmployeeStoreSuite) TestListAndUpdate() {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := s.add("Ana", "h1", true)
	first.CreatedAt = base
	s.store.employees[first.ID] = *first
	second := s.add("Bruno", "h2", true)
	second.CreatedAt = base.Add(time.Hour)
	s.store.employees[second.ID] = *second

	list, err := s.store.List(s.ctx, s.company)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID)
	s.Equal(first.ID, list[1].ID)

	first.IsActive = false
	first.FullName = "Ana Lima"
	first.PINHash = "ignored"
	s.Require().NoError(s.store.Update(s.ctx, first))
	found, err := s.store.FindByID(s.ctx, s.company, first.ID)
	s.Require().NoError(err)
	s.Equal("Ana Lima", found.FullName)
	s.Equal("h1", found.PINHash)

	roster, err := s.store.ListPINRoster(s.ctx, s.company)
	s.Require().NoError(err)
	s.Require().Len(roster, 1)
	s.Equal("Bruno", roster[0].FullName)

	other := *first
	other.CompanyID = id.CompanyID(uuid.New())
	s.ErrorIs(s.store.Update(s.ctx, &other), sentinel.ErrNotFound)
}

func (s *EmployeeStoreSuite) TestSeedDemoCompany() {
	store := NewInMemory()
	companyID, seeded := SeedDemoCompany(store)

	s.Len(seeded, 2)
	for _, p := range seeded {
		found, err := store.FindByUser(s.ctx, companyID, p.UserID)
		s.Require().NoError(err)
		s.True(found.IsActive)
	}
	roster, err := store.ListPINRoster(s.ctx, companyID)
	s.Require().NoError(err)
	s.Empty(roster, "seeded employees have no PIN yet")
}
