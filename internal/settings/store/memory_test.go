package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"punchclock/internal/settings/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
)

type SettingsStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *SettingsStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestSettingsStoreSuite(t *testing.T) {
	suite.Run(t, new(SettingsStoreSuite))
}

func (s *SettingsStoreSuite) TestCreateIfAbsent() {
	companyID := id.CompanyID(uuid.New())

	first, err := s.store.CreateIfAbsent(s.ctx, models.Defaults(companyID, "first", time.Now()))
	s.Require().NoError(err)
	s.Equal("first", first.QRSecret)

	second, err := s.store.CreateIfAbsent(s.ctx, models.Defaults(companyID, "second", time.Now()))
	s.Require().NoError(err)
	s.Equal("first", second.QRSecret, "existing row wins")
}

func (s *SettingsStoreSuite) TestReturnedValuesAreCopies() {
	companyID := id.CompanyID(uuid.New())
	_, err := s.store.CreateIfAbsent(s.ctx, models.Defaults(companyID, "x", time.Now()))
	s.Require().NoError(err)

	found, err := s.store.FindByCompany(s.ctx, companyID)
	s.Require().NoError(err)
	found.RadiusMeters = 1

	again, err := s.store.FindByCompany(s.ctx, companyID)
	s.Require().NoError(err)
	s.Equal(200, again.RadiusMeters)
}

func (s *SettingsStoreSuite) TestSecrets() {
	companyID := id.CompanyID(uuid.New())
	_, err := s.store.CreateIfAbsent(s.ctx, models.Defaults(companyID, "", time.Now()))
	s.Require().NoError(err)

	s.Run("sets a secret only when empty", func() {
		got, err := s.store.SetSecretIfEmpty(s.ctx, companyID, "a")
		s.Require().NoError(err)
		s.Equal("a", got)

		got, err = s.store.SetSecretIfEmpty(s.ctx, companyID, "b")
		s.Require().NoError(err)
		s.Equal("a", got)
	})

	s.Run("replace overwrites", func() {
		s.Require().NoError(s.store.ReplaceSecret(s.ctx, companyID, "c"))
		found, err := s.store.FindByCompany(s.ctx, companyID)
		s.Require().NoError(err)
		s.Equal("c", found.QRSecret)
	})

	s.Run("unknown company", func() {
		err := s.store.ReplaceSecret(s.ctx, id.CompanyID(uuid.New()), "d")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
