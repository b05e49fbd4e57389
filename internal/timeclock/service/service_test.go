package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks EmployeeLookup,SettingsProvider,AuditRecorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"punchclock/internal/block"
	empmodels "punchclock/internal/employee/models"
	"punchclock/internal/geo"
	"punchclock/internal/qrtoken"
	settingsmodels "punchclock/internal/settings/models"
	"punchclock/internal/timeclock/models"
	"punchclock/internal/timeclock/resolver"
	"punchclock/internal/timeclock/service/mocks"
	"punchclock/internal/timeclock/store"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/sentinel"
	txcontext "punchclock/pkg/platform/tx"
	"punchclock/pkg/requestcontext"
)

type TimeclockServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	employees *mocks.MockEmployeeLookup
	settings  *mocks.MockSettingsProvider
	audit     *mocks.MockAuditRecorder
	store     *store.InMemory
	service   *Service

	actor    requestcontext.AuthenticatedActor
	employee *empmodels.Profile
	policy   *settingsmodels.Settings
	now      time.Time
}

func TestTimeclockServiceSuite(t *testing.T) {
	suite.Run(t, new(TimeclockServiceSuite))
}

func (s *TimeclockServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.employees = mocks.NewMockEmployeeLookup(s.ctrl)
	s.settings = mocks.NewMockSettingsProvider(s.ctrl)
	s.audit = mocks.NewMockAuditRecorder(s.ctrl)
	s.store = store.NewInMemory()
	s.service = New(s.store, s.employees, s.settings,
		WithAuditRecorder(s.audit),
		WithTxRunner(&txcontext.Serial{}),
		WithDefaultLocation(time.UTC),
	)

	companyID := id.CompanyID(uuid.New())
	s.actor = requestcontext.AuthenticatedActor{
		UserID:    id.UserID(uuid.New()),
		CompanyID: companyID,
		Role:      requestcontext.RoleEmployee,
	}
	s.employee = &empmodels.Profile{
		ID:         id.EmployeeID(uuid.New()),
		CompanyID:  companyID,
		UserID:     s.actor.UserID,
		FullName:   "Ana Lima",
		IsActive:   true,
		UserActive: true,
	}
	s.policy = settingsmodels.Defaults(companyID, "company-secret", time.Time{})
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (s *TimeclockServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TimeclockServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *TimeclockServiceSuite) expectLookups() {
	s.employees.EXPECT().FindByUser(gomock.Any(), s.actor.CompanyID, s.actor.UserID).Return(s.employee, nil).AnyTimes()
	s.employees.EXPECT().FindByID(gomock.Any(), s.actor.CompanyID, s.employee.ID).Return(s.employee, nil).AnyTimes()
	s.settings.EXPECT().Get(gomock.Any(), s.actor.CompanyID).Return(s.policy, nil).AnyTimes()
}

func onSite() *geo.Reading {
	return &geo.Reading{Lat: 0.0001, Lng: 0.0001, AccuracyMeters: 10}
}

func (s *TimeclockServiceSuite) TestPunchSequence() {
	s.Run("records the four events of a day in order", func() {
		s.expectLookups()
		var actions []audit.Event
		s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			actions = append(actions, e)
			return nil
		}).Times(4)

		want := []models.EventType{models.EventIn, models.EventBreakStart, models.EventBreakEnd, models.EventOut}
		for i, typ := range want {
			s.now = s.now.Add(time.Duration(i) * time.Hour)
			event, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite(), DeviceID: " phone-1 "})
			s.Require().NoError(err)
			s.Equal(typ, event.Type)
			s.Equal(models.MethodGeo, event.Method)
			s.Equal(models.SourcePWA, event.Source)
			s.Equal(geo.StatusOK, event.GeoStatus)
			s.Equal("phone-1", event.DeviceID)
			s.Require().NotNil(event.DistanceMeters)
		}

		s.Require().Len(actions, 4)
		for i, e := range actions {
			s.Equal(audit.ActionTimeclockPunch, e.Action)
			s.Equal(audit.OutcomeSuccess, e.Outcome)
			s.Equal(string(want[i]), e.EventType)
			s.Equal("GEO", e.Method)
		}
	})

	s.Run("a fifth punch is blocked and audited", func() {
		s.audit.EXPECT().RecordBlocked(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e audit.Event) {
			s.Equal(audit.ActionTimeclockPunchBlocked, e.Action)
			s.Equal(audit.OutcomeBlocked, e.Outcome)
			s.Equal(string(block.WorkdayAlreadyClosed), e.Reason)
		})

		_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
		s.True(block.Is(err, block.WorkdayAlreadyClosed))

		view, err := s.service.Today(s.ctx(), s.actor)
		s.Require().NoError(err)
		s.Len(view.Events, 4)
		s.Equal(models.EventOut, view.Status.Current)
		s.Empty(view.Status.Next)
	})

	s.Run("the next local day starts again with IN", func() {
		s.now = s.now.Add(24 * time.Hour)
		s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

		event, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
		s.Require().NoError(err)
		s.Equal(models.EventIn, event.Type)
	})
}

func (s *TimeclockServiceSuite) TestPunchWithQRFallback() {
	s.expectLookups()
	token, err := qrtoken.BuildDaily(s.actor.CompanyID, "2026-03-10", s.policy.QRSecret)
	s.Require().NoError(err)

	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal("QR", e.Method)
		s.Equal("2026-03-10", e.QRDate)
		s.Equal(string(geo.StatusMissing), e.GeoStatus)
		return nil
	})

	event, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{QRToken: token})
	s.Require().NoError(err)
	s.Equal(models.MethodQR, event.Method)
	s.Equal("2026-03-10", event.QRDate)
	s.Nil(event.Reading)
	s.Nil(event.DistanceMeters)
}

func (s *TimeclockServiceSuite) TestPunchBlockedByResolver() {
	s.expectLookups()
	s.audit.EXPECT().RecordBlocked(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e audit.Event) {
		s.Equal(string(block.GeoFailedQRRequired), e.Reason)
		s.Equal("GEO", e.MethodAttempted)
	})
	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{})
	s.True(block.Is(err, block.GeoFailedQRRequired))

	events, err := s.store.ListBetween(context.Background(), s.actor.CompanyID, s.employee.ID, time.Time{}, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *TimeclockServiceSuite) TestLateCommitKeepsDayOrdered() {
	s.expectLookups()
	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	base := s.now
	at := func(t time.Time) context.Context {
		return requestcontext.WithTime(context.Background(), t)
	}

	// The request frozen at base+200ms wins the employee lock first.
	first, err := s.service.Punch(at(base.Add(200*time.Millisecond)), s.actor, PunchRequest{Reading: onSite()})
	s.Require().NoError(err)
	s.Equal(models.EventIn, first.Type)

	second, err := s.service.Punch(at(base), s.actor, PunchRequest{Reading: onSite()})
	s.Require().NoError(err)
	s.Equal(models.EventBreakStart, second.Type)
	s.True(second.Timestamp.After(first.Timestamp))

	kiosk := requestcontext.AuthenticatedActor{UserID: id.UserID(uuid.New()), CompanyID: s.actor.CompanyID, Role: requestcontext.RoleKiosk}
	third, err := s.service.KioskPunch(at(base.Add(100*time.Millisecond)), kiosk, s.employee.ID, models.KioskMethodPIN, "Front desk")
	s.Require().NoError(err)
	s.Equal(models.EventBreakEnd, third.Event.Type)
	s.True(third.Event.Timestamp.After(second.Timestamp))

	view, err := s.service.Today(at(base.Add(time.Minute)), s.actor)
	s.Require().NoError(err)
	var types []models.EventType
	for _, e := range view.Events {
		types = append(types, e.Type)
	}
	s.Equal([]models.EventType{models.EventIn, models.EventBreakStart, models.EventBreakEnd}, types)
	s.Equal(models.EventOut, view.Status.Next)
}

type resolverFunc func(ctx context.Context, actor id.UserID, policy resolver.Policy, attempt resolver.Attempt) (resolver.Resolution, error)

func (f resolverFunc) ResolvePunch(ctx context.Context, actor id.UserID, policy resolver.Policy, attempt resolver.Attempt) (resolver.Resolution, error) {
	return f(ctx, actor, policy, attempt)
}

func (s *TimeclockServiceSuite) TestPunchUsesInjectedResolver() {
	var got resolver.Attempt
	svc := New(s.store, s.employees, s.settings,
		WithAuditRecorder(s.audit),
		WithTxRunner(&txcontext.Serial{}),
		WithDefaultLocation(time.UTC),
		WithResolver(resolverFunc(func(_ context.Context, actor id.UserID, policy resolver.Policy, attempt resolver.Attempt) (resolver.Resolution, error) {
			s.Equal(s.actor.UserID, actor)
			s.Equal(s.actor.CompanyID, policy.CompanyID)
			got = attempt
			return resolver.Resolution{Method: models.MethodQR, QRDate: attempt.Today}, nil
		})),
	)
	s.expectLookups()
	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	event, err := svc.Punch(s.ctx(), s.actor, PunchRequest{QRToken: "  token  "})
	s.Require().NoError(err)
	s.Equal("token", got.QRToken)
	s.Equal("2026-03-10", got.Today)
	s.Equal(models.MethodQR, event.Method)
	s.Equal(models.EventIn, event.Type)
}

func (s *TimeclockServiceSuite) TestPunchRejectsInvalidReading() {
	_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: &geo.Reading{Lat: 91}})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *TimeclockServiceSuite) TestPunchRequiresActiveEmployee() {
	s.Run("missing profile", func() {
		s.employees.EXPECT().FindByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("inactive profile", func() {
		inactive := *s.employee
		inactive.IsActive = false
		s.employees.EXPECT().FindByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(&inactive, nil)
		_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *TimeclockServiceSuite) TestAuditFailureRollsBackPunch() {
	s.expectLookups()
	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable"))

	_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *TimeclockServiceSuite) TestConcurrentPunchesGetDistinctTypes() {
	s.expectLookups()
	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	s.audit.EXPECT().RecordBlocked(gomock.Any(), gomock.Any()).Times(2)

	var wg sync.WaitGroup
	errs := make(chan error, 6)
	for range 6 {
		wg.Go(func() {
			_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
			errs <- err
		})
	}
	wg.Wait()
	close(errs)

	var closed int
	for err := range errs {
		if err != nil {
			s.True(block.Is(err, block.WorkdayAlreadyClosed))
			closed++
		}
	}
	s.Equal(2, closed)

	view, err := s.service.Today(s.ctx(), s.actor)
	s.Require().NoError(err)
	types := make([]models.EventType, 0, len(view.Events))
	for _, e := range view.Events {
		types = append(types, e.Type)
	}
	s.ElementsMatch([]models.EventType{models.EventIn, models.EventBreakStart, models.EventBreakEnd, models.EventOut}, types)
}

func (s *TimeclockServiceSuite) TestHistory() {
	s.expectLookups()
	s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	first := s.now
	_, err := s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
	s.Require().NoError(err)
	s.now = s.now.Add(time.Hour)
	_, err = s.service.Punch(s.ctx(), s.actor, PunchRequest{Reading: onSite()})
	s.Require().NoError(err)

	s.Run("bounds are inclusive", func() {
		events, err := s.service.History(s.ctx(), s.actor, first, s.now)
		s.Require().NoError(err)
		s.Len(events, 2)
	})

	s.Run("from after to is rejected", func() {
		_, err := s.service.History(s.ctx(), s.actor, s.now, first)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *TimeclockServiceSuite) TestKioskPunch() {
	kiosk := requestcontext.AuthenticatedActor{
		UserID:    id.UserID(uuid.New()),
		CompanyID: s.actor.CompanyID,
		Role:      requestcontext.RoleKiosk,
	}

	s.Run("records a kiosk event for the identified employee", func() {
		s.expectLookups()
		s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(audit.ActionKioskPunch, e.Action)
			s.Equal("PIN", e.Method)
			s.Equal("Front desk", e.DeviceLabel)
			s.Equal(s.employee.ID.String(), e.EmployeeID)
			s.Equal(string(models.EventIn), e.EventType)
			return nil
		})

		result, err := s.service.KioskPunch(s.ctx(), kiosk, s.employee.ID, models.KioskMethodPIN, "  Front desk ")
		s.Require().NoError(err)
		s.Equal(models.EventIn, result.Event.Type)
		s.Equal(models.SourceKiosk, result.Event.Source)
		s.Equal(models.MethodKiosk, result.Event.Method)
		s.Equal(geo.StatusMissing, result.Event.GeoStatus)
		s.Equal("Front desk", result.Event.DeviceID)
		s.Equal(models.StatusWorking, result.StatusNow)
		s.Equal("Ana Lima", result.Employee.FullName)
	})

	s.Run("unknown employee is audited and reported as not found", func() {
		other := id.EmployeeID(uuid.New())
		s.employees.EXPECT().FindByID(gomock.Any(), s.actor.CompanyID, other).Return(nil, sentinel.ErrNotFound)
		s.audit.EXPECT().RecordBlocked(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e audit.Event) {
			s.Equal(audit.ActionKioskPunchBlocked, e.Action)
			s.Equal(string(block.EmployeeNotFound), e.Reason)
			s.Equal("EMPLOYEE_QR", e.Method)
			s.Equal(other.String(), e.EmployeeID)
		})

		_, err := s.service.KioskPunch(s.ctx(), kiosk, other, models.KioskMethodEmployeeQR, "Front desk")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("invalid method", func() {
		_, err := s.service.KioskPunch(s.ctx(), kiosk, s.employee.ID, "FACE", "Front desk")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *TimeclockServiceSuite) TestNextEventFor() {
	s.expectLookups()
	status, err := s.service.NextEventFor(s.ctx(), s.actor.CompanyID, s.employee.ID)
	s.Require().NoError(err)
	s.Empty(status.Current)
	s.Equal(models.EventIn, status.Next)
}
