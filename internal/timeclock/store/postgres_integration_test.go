//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	empmodels "punchclock/internal/employee/models"
	employeestore "punchclock/internal/employee/store"
	"punchclock/internal/geo"
	"punchclock/internal/platform/postgres"
	"punchclock/internal/timeclock/models"
	"punchclock/internal/timeclock/store"
	id "punchclock/pkg/domain"
	"punchclock/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	tx       *postgres.TxRunner
	company  id.CompanyID
	employee id.EmployeeID
	dayStart time.Time
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
	s.tx = postgres.NewTxRunner(s.postgres.DB, 5*time.Second)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "time_clock_events", "employee_profiles"))

	s.company = id.CompanyID(uuid.New())
	profile := &empmodels.Profile{
		ID:         id.EmployeeID(uuid.New()),
		CompanyID:  s.company,
		UserID:     id.UserID(uuid.New()),
		FullName:   "Ana Souza",
		IsActive:   true,
		UserActive: true,
	}
	s.Require().NoError(employeestore.NewPostgres(s.postgres.DB).Create(ctx, profile))
	s.employee = profile.ID
	s.dayStart = time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) event(typ models.EventType, at time.Time) *models.Event {
	return &models.Event{
		ID:         id.EventID(uuid.New()),
		CompanyID:  s.company,
		EmployeeID: s.employee,
		Type:       typ,
		Timestamp:  at,
		Source:     models.SourcePWA,
		Method:     models.MethodQR,
		GeoStatus:  geo.StatusMissing,
		QRDate:     "2026-03-02",
	}
}

func (s *PostgresStoreSuite) dayEnd() time.Time {
	return s.dayStart.Add(24*time.Hour - time.Microsecond)
}

func (s *PostgresStoreSuite) TestRoundTripWithLocation() {
	ctx := context.Background()
	distance := 42
	e := s.event(models.EventIn, s.dayStart.Add(9*time.Hour))
	e.Method = models.MethodGeo
	e.GeoStatus = geo.StatusOK
	e.QRDate = ""
	e.DistanceMeters = &distance
	e.Reading = &geo.Reading{Lat: -23.5505, Lng: -46.6333, AccuracyMeters: 12.5}
	e.DeviceID = "pixel-7"
	s.Require().NoError(s.store.Create(ctx, e))

	events, err := s.store.ListBetween(ctx, s.company, s.employee, s.dayStart, s.dayEnd())
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	got := events[0]
	s.Equal(e.ID, got.ID)
	s.Equal(models.MethodGeo, got.Method)
	s.Equal(geo.StatusOK, got.GeoStatus)
	s.Equal("pixel-7", got.DeviceID)
	s.Require().NotNil(got.Reading)
	s.InDelta(-23.5505, got.Reading.Lat, 1e-9)
	s.InDelta(12.5, got.Reading.AccuracyMeters, 1e-9)
	s.Require().NotNil(got.DistanceMeters)
	s.Equal(42, *got.DistanceMeters)
	s.Empty(got.QRDate)
}

func (s *PostgresStoreSuite) TestDayWindow() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.event(models.EventOut, s.dayStart.Add(-time.Minute))))
	s.Require().NoError(s.store.Create(ctx, s.event(models.EventBreakStart, s.dayStart.Add(5*time.Hour))))
	s.Require().NoError(s.store.Create(ctx, s.event(models.EventIn, s.dayStart.Add(time.Hour))))

	events, err := s.store.ListBetween(ctx, s.company, s.employee, s.dayStart, s.dayEnd())
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(models.EventIn, events[0].Type)
	s.Equal(models.EventBreakStart, events[1].Type)

	last, err := s.store.LastBetween(ctx, s.company, s.employee, s.dayStart, s.dayEnd())
	s.Require().NoError(err)
	s.Equal(models.EventBreakStart, last.Type)
	s.True(last.At.Equal(s.dayStart.Add(5*time.Hour)))

	none, err := s.store.LastBetween(ctx, s.company, s.employee, s.dayStart.Add(24*time.Hour), s.dayEnd().Add(24*time.Hour))
	s.Require().NoError(err)
	s.Zero(none)
}

// Concurrent punches for one employee must each see the previous one.
func (s *PostgresStoreSuite) TestLockEmployeeSerializesSequencing() {
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for range 4 {
		wg.Go(func() {
			errs <- s.tx.RunInTx(ctx, func(ctx context.Context) error {
				if err := s.store.LockEmployee(ctx, s.employee); err != nil {
					return err
				}
				day, err := s.store.ListBetween(ctx, s.company, s.employee, s.dayStart, s.dayEnd())
				if err != nil {
					return err
				}
				next := models.DayStatusOf(day).Next
				at := s.dayStart.Add(time.Duration(len(day)+1) * time.Minute)
				return s.store.Create(ctx, s.event(next, at))
			})
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	events, err := s.store.ListBetween(ctx, s.company, s.employee, s.dayStart, s.dayEnd())
	s.Require().NoError(err)
	s.Require().Len(events, 4)
	seen := map[models.EventType]int{}
	for _, e := range events {
		seen[e.Type]++
	}
	s.Equal(map[models.EventType]int{
		models.EventIn: 1, models.EventBreakStart: 1, models.EventBreakEnd: 1, models.EventOut: 1,
	}, seen)
}

func (s *PostgresStoreSuite) TestLatestPerEmployee() {
	ctx := context.Background()
	other := &empmodels.Profile{
		ID:         id.EmployeeID(uuid.New()),
		CompanyID:  s.company,
		UserID:     id.UserID(uuid.New()),
		FullName:   "Bruno Lima",
		IsActive:   true,
		UserActive: true,
	}
	s.Require().NoError(employeestore.NewPostgres(s.postgres.DB).Create(ctx, other))

	s.Require().NoError(s.store.Create(ctx, s.event(models.EventIn, s.dayStart.Add(time.Hour))))
	s.Require().NoError(s.store.Create(ctx, s.event(models.EventBreakStart, s.dayStart.Add(4*time.Hour))))
	yesterday := s.event(models.EventOut, s.dayStart.Add(-time.Minute))
	yesterday.EmployeeID = other.ID
	s.Require().NoError(s.store.Create(ctx, yesterday))

	latest, err := s.store.LatestPerEmployee(ctx, s.company, s.dayStart, s.dayEnd())
	s.Require().NoError(err)
	s.Require().Len(latest, 1)
	got := latest[s.employee]
	s.Equal(models.EventBreakStart, got.Type)
	s.Equal(s.employee, got.EmployeeID)
	s.True(got.Timestamp.Equal(s.dayStart.Add(4 * time.Hour)))
}
