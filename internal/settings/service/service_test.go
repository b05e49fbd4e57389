package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"punchclock/internal/settings/models"
	"punchclock/internal/settings/store"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	auditmemory "punchclock/pkg/platform/audit/store/memory"
)

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, audit.Event) error {
	return errors.New("audit store down")
}

type memoryRecorder struct {
	store *auditmemory.InMemoryStore
}

func (p memoryRecorder) Record(ctx context.Context, event audit.Event) error {
	return p.store.Append(ctx, event)
}

type SettingsServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.InMemory
	audits  *auditmemory.InMemoryStore
	service *Service
	company id.CompanyID
	admin   id.UserID
	calls   atomic.Int32
}

func TestSettingsServiceSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.audits = auditmemory.NewInMemoryStore()
	s.calls.Store(0)
	s.service = New(s.store,
		WithAuditRecorder(memoryRecorder{store: s.audits}),
		WithSecretGenerator(func() (string, error) {
			n := s.calls.Add(1)
			return fmt.Sprintf("secret-%d", n), nil
		}),
	)
	s.company = id.CompanyID(uuid.New())
	s.admin = id.UserID(uuid.New())
}

func (s *SettingsServiceSuite) TestGet() {
	s.Run("creates defaults on first use", func() {
		st, err := s.service.Get(s.ctx, s.company)
		s.Require().NoError(err)
		s.True(st.GeofenceEnabled)
		s.True(st.GeoRequired)
		s.True(st.QREnabled)
		s.Equal(200, st.RadiusMeters)
		s.Equal(100, st.MaxAccuracyMeters)
		s.Equal(models.FallbackGeoOrQR, st.FallbackMode)
		s.Equal("secret-1", st.QRSecret)
	})

	s.Run("returns stored settings on later calls", func() {
		st, err := s.service.Get(s.ctx, s.company)
		s.Require().NoError(err)
		s.Equal("secret-1", st.QRSecret)
		s.Equal(int32(1), s.calls.Load())
	})

	s.Run("fills in a missing secret", func() {
		other := id.CompanyID(uuid.New())
		_, err := s.store.CreateIfAbsent(s.ctx, models.Defaults(other, "", time.Now()))
		s.Require().NoError(err)

		st, err := s.service.Get(s.ctx, other)
		s.Require().NoError(err)
		s.NotEmpty(st.QRSecret)
	})
}

func (s *SettingsServiceSuite) TestConcurrentFirstGetAgreesOnSecret() {
	const callers = 20
	var wg sync.WaitGroup
	got := make([]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := s.service.Get(s.ctx, s.company)
			if err == nil {
				got[i] = st.QRSecret
			}
		}()
	}
	wg.Wait()

	stored, err := s.store.FindByCompany(s.ctx, s.company)
	s.Require().NoError(err)
	for _, secret := range got {
		s.Equal(stored.QRSecret, secret)
	}
}

func (s *SettingsServiceSuite) TestUpdate() {
	s.Run("applies present fields and audits", func() {
		radius := 350
		mode := models.FallbackQROnly
		st, err := s.service.Update(s.ctx, s.company, s.admin, models.Update{
			RadiusMeters: &radius,
			FallbackMode: &mode,
		})
		s.Require().NoError(err)
		s.Equal(350, st.RadiusMeters)
		s.Equal(models.FallbackQROnly, st.FallbackMode)
		s.Equal(100, st.MaxAccuracyMeters)

		events, err := s.audits.ListByCompany(s.ctx, s.company)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionSettingsUpdated, events[0].Action)
		s.Equal(s.admin, events[0].ActorID)
	})

	s.Run("rejects invalid values", func() {
		radius := 0
		_, err := s.service.Update(s.ctx, s.company, s.admin, models.Update{RadiusMeters: &radius})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("fails when the audit cannot be recorded", func() {
		svc := New(s.store, WithAuditRecorder(failingRecorder{}))
		enabled := false
		_, err := svc.Update(s.ctx, s.company, s.admin, models.Update{QREnabled: &enabled})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *SettingsServiceSuite) TestRotateQRSecret() {
	before, err := s.service.Get(s.ctx, s.company)
	s.Require().NoError(err)

	s.Require().NoError(s.service.RotateQRSecret(s.ctx, s.company, s.admin))

	after, err := s.service.Get(s.ctx, s.company)
	s.Require().NoError(err)
	s.NotEqual(before.QRSecret, after.QRSecret)

	events, err := s.audits.ListByCompany(s.ctx, s.company)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionQRSecretRotated, events[0].Action)
}
