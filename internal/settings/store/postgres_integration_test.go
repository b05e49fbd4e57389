//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"punchclock/internal/settings/models"
	"punchclock/internal/settings/store"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
	"punchclock/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "company_settings")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	companyID := id.CompanyID(uuid.New())
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := s.store.CreateIfAbsent(ctx, models.Defaults(companyID, "secret", now))
	s.Require().NoError(err)
	s.Equal(models.FallbackGeoOrQR, created.FallbackMode)

	created.CenterLat = -23.5505
	created.CenterLng = -46.6333
	created.FallbackMode = models.FallbackQROnly
	created.Timezone = "America/Sao_Paulo"
	s.Require().NoError(s.store.Save(ctx, created))

	found, err := s.store.FindByCompany(ctx, companyID)
	s.Require().NoError(err)
	s.InDelta(-23.5505, found.CenterLat, 1e-9)
	s.Equal(models.FallbackQROnly, found.FallbackMode)
	s.Equal("America/Sao_Paulo", found.Timezone)
	s.Equal("secret", found.QRSecret, "save never touches the secret")
}

func (s *PostgresStoreSuite) TestNotFound() {
	_, err := s.store.FindByCompany(context.Background(), id.CompanyID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentSecretFill verifies that racing fills converge on one secret.
func (s *PostgresStoreSuite) TestConcurrentSecretFill() {
	ctx := context.Background()
	companyID := id.CompanyID(uuid.New())
	_, err := s.store.CreateIfAbsent(ctx, models.Defaults(companyID, "", time.Now()))
	s.Require().NoError(err)

	const goroutines = 20
	results := make([]string, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			secret, err := s.store.SetSecretIfEmpty(ctx, companyID, uuid.NewString())
			if err == nil {
				results[i] = secret
			}
		}()
	}
	wg.Wait()

	for _, r := range results {
		s.Equal(results[0], r)
	}
	s.NotEmpty(results[0])
}
