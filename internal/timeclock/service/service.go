// Package service records punches: browser punches authorized by the
// fallback resolver and kiosk punches for an already identified employee.
//
// An event and its success audit are written in one transaction, so an
// authorized punch is never stored without its audit row. Blocked attempts
// are audited before the block is returned.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"punchclock/internal/block"
	empmodels "punchclock/internal/employee/models"
	"punchclock/internal/geo"
	"punchclock/internal/localday"
	settingsmodels "punchclock/internal/settings/models"
	"punchclock/internal/timeclock/metrics"
	"punchclock/internal/timeclock/models"
	"punchclock/internal/timeclock/resolver"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/sentinel"
	"punchclock/pkg/requestcontext"
)

var tracer = otel.Tracer("punchclock/internal/timeclock/service")

type Store interface {
	Create(ctx context.Context, event *models.Event) error
	LockEmployee(ctx context.Context, employeeID id.EmployeeID) error
	ListBetween(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, from, to time.Time) ([]models.Event, error)
	LastBetween(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, from, to time.Time) (models.Last, error)
}

type EmployeeLookup interface {
	FindByID(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (*empmodels.Profile, error)
	FindByUser(ctx context.Context, companyID id.CompanyID, userID id.UserID) (*empmodels.Profile, error)
}

type SettingsProvider interface {
	Get(ctx context.Context, companyID id.CompanyID) (*settingsmodels.Settings, error)
}

type PunchResolver interface {
	ResolvePunch(ctx context.Context, actor id.UserID, policy resolver.Policy, attempt resolver.Attempt) (resolver.Resolution, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
	RecordBlocked(ctx context.Context, event audit.Event)
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	store           Store
	employees       EmployeeLookup
	settings        SettingsProvider
	resolver        PunchResolver
	audit           AuditRecorder
	tx              TxRunner
	logger          *slog.Logger
	metrics         *metrics.Metrics
	defaultLocation *time.Location
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditRecorder(r AuditRecorder) Option {
	return func(s *Service) {
		s.audit = r
	}
}

func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithResolver(r PunchResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithDefaultLocation sets the zone used for companies without a valid
// timezone setting.
func WithDefaultLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.defaultLocation = loc
	}
}

func New(store Store, employees EmployeeLookup, settings SettingsProvider, opts ...Option) *Service {
	s := &Service{
		store:     store,
		employees: employees,
		settings:  settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = directTx{}
	}
	if s.resolver == nil {
		s.resolver = resolver.New(resolver.WithAuditRecorder(s.audit), resolver.WithLogger(s.logger))
	}
	if s.defaultLocation == nil {
		s.defaultLocation = time.Local
	}
	return s
}

// PunchRequest is a browser punch attempt.
type PunchRequest struct {
	Reading  *geo.Reading
	QRToken  string
	DeviceID string
}

// Punch authorizes and records the actor's next event of the day.
func (s *Service) Punch(ctx context.Context, actor requestcontext.AuthenticatedActor, req PunchRequest) (*models.Event, error) {
	start := time.Now()
	defer s.metrics.ObservePunch(start)

	ctx, span := tracer.Start(ctx, "timeclock.Punch")
	defer span.End()
	span.SetAttributes(attribute.String("company_id", actor.CompanyID.String()))

	if req.Reading != nil {
		if err := req.Reading.Validate(); err != nil {
			return nil, err
		}
	}

	employee, err := s.employeeForUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	st, err := s.settings.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	loc := st.Location(s.defaultLocation)
	now := requestcontext.Now(ctx)

	res, err := s.resolver.ResolvePunch(ctx, actor.UserID, resolver.PolicyFrom(st), resolver.Attempt{
		Reading: req.Reading,
		QRToken: strings.TrimSpace(req.QRToken),
		Today:   localday.Date(now, loc),
	})
	if err != nil {
		s.countBlocked(models.SourcePWA, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event := &models.Event{
		ID:             id.EventID(uuid.New()),
		CompanyID:      actor.CompanyID,
		EmployeeID:     employee.ID,
		Timestamp:      now,
		Source:         models.SourcePWA,
		Method:         res.Method,
		DeviceID:       strings.TrimSpace(req.DeviceID),
		IP:             requestcontext.ClientIP(ctx),
		UserAgent:      requestcontext.UserAgent(ctx),
		Reading:        res.Reading,
		DistanceMeters: res.DistanceMeters,
		GeoStatus:      res.GeoStatus,
		QRDate:         res.QRDate,
	}

	err = s.record(ctx, loc, event, func(e *models.Event) audit.Event {
		return audit.Event{
			CompanyID: e.CompanyID,
			ActorID:   actor.UserID,
			Action:    audit.ActionTimeclockPunch,
			Outcome:   audit.OutcomeSuccess,
			Entity:    "time_clock_event",
			EntityID:  e.ID.String(),
			Method:    string(e.Method),
			EventType: string(e.Type),
			GeoStatus: string(e.GeoStatus),
			QRDate:    e.QRDate,
		}
	})
	if err != nil {
		if b, ok := block.As(err); ok {
			s.recordBlocked(ctx, audit.Event{
				CompanyID:       actor.CompanyID,
				ActorID:         actor.UserID,
				Action:          audit.ActionTimeclockPunchBlocked,
				Reason:          string(b.Code),
				Entity:          "time_clock_event",
				MethodAttempted: string(res.Method),
				GeoStatus:       string(res.GeoStatus),
				DistanceMeters:  res.DistanceMeters,
				QRDate:          res.QRDate,
			}, models.SourcePWA)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.metrics.IncPunchRecorded(string(models.SourcePWA), string(event.Method))
	span.SetAttributes(attribute.String("event_type", string(event.Type)))
	return event, nil
}

// KioskPunchResult is a recorded kiosk punch with the employee's new status.
type KioskPunchResult struct {
	Event     *models.Event
	Employee  *empmodels.Profile
	StatusNow models.Status
}

// KioskPunch records the next event for an employee a kiosk has already
// identified by PIN or employee QR.
func (s *Service) KioskPunch(ctx context.Context, actor requestcontext.AuthenticatedActor, employeeID id.EmployeeID, method models.KioskMethod, deviceLabel string) (*KioskPunchResult, error) {
	ctx, span := tracer.Start(ctx, "timeclock.KioskPunch")
	defer span.End()

	if !method.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "method must be PIN or EMPLOYEE_QR")
	}
	deviceLabel = strings.TrimSpace(deviceLabel)

	blocked := audit.Event{
		CompanyID:   actor.CompanyID,
		ActorID:     actor.UserID,
		Action:      audit.ActionKioskPunchBlocked,
		Entity:      "employee_profile",
		EntityID:    employeeID.String(),
		EmployeeID:  employeeID.String(),
		Method:      string(method),
		DeviceLabel: deviceLabel,
	}

	employee, err := s.employees.FindByID(ctx, actor.CompanyID, employeeID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if err != nil || !employee.CanPunch() {
		blocked.Reason = string(block.EmployeeNotFound)
		s.recordBlocked(ctx, blocked, models.SourceKiosk)
		return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
	}

	st, err := s.settings.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	loc := st.Location(s.defaultLocation)

	event := &models.Event{
		ID:         id.EventID(uuid.New()),
		CompanyID:  actor.CompanyID,
		EmployeeID: employee.ID,
		Timestamp:  requestcontext.Now(ctx),
		Source:     models.SourceKiosk,
		Method:     models.MethodKiosk,
		DeviceID:   deviceLabel,
		IP:         requestcontext.ClientIP(ctx),
		UserAgent:  requestcontext.UserAgent(ctx),
		GeoStatus:  geo.StatusMissing,
	}

	err = s.record(ctx, loc, event, func(e *models.Event) audit.Event {
		return audit.Event{
			CompanyID:   e.CompanyID,
			ActorID:     actor.UserID,
			Action:      audit.ActionKioskPunch,
			Outcome:     audit.OutcomeSuccess,
			Entity:      "time_clock_event",
			EntityID:    e.ID.String(),
			EmployeeID:  e.EmployeeID.String(),
			EventType:   string(e.Type),
			Method:      string(method),
			DeviceLabel: deviceLabel,
		}
	})
	if err != nil {
		if b, ok := block.As(err); ok {
			blocked.Reason = string(b.Code)
			s.recordBlocked(ctx, blocked, models.SourceKiosk)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.metrics.IncPunchRecorded(string(models.SourceKiosk), string(method))
	return &KioskPunchResult{
		Event:     event,
		Employee:  employee,
		StatusNow: models.StatusAfter(event.Type),
	}, nil
}

// minEventGap keeps stored timestamps strictly increasing at the database's
// microsecond precision.
const minEventGap = time.Microsecond

// record sequences event against the employee's local day and stores it
// with its audit row in one transaction. Requests that commit after a
// later-clocked punch are stamped just after it, so timestamp order always
// matches sequencing order.
func (s *Service) record(ctx context.Context, loc *time.Location, event *models.Event, auditOf func(*models.Event) audit.Event) error {
	dayStart, dayEnd := localday.Bounds(event.Timestamp, loc)

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.LockEmployee(ctx, event.EmployeeID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock employee day")
		}
		last, err := s.store.LastBetween(ctx, event.CompanyID, event.EmployeeID, dayStart, dayEnd.Add(-time.Nanosecond))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load last event")
		}
		next, err := models.NextEventType(last.Type)
		if err != nil {
			return err
		}
		event.Type = next
		if !last.At.IsZero() && !event.Timestamp.After(last.At) {
			event.Timestamp = last.At.Add(minEventGap)
		}

		if err := s.store.Create(ctx, event); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record punch")
		}
		if s.audit == nil {
			return nil
		}
		if err := s.audit.Record(ctx, auditOf(event)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
		return nil
	})
}

// TodayView is the actor's events for the current local day.
type TodayView struct {
	Events []models.Event
	Status models.DayStatus
}

func (s *Service) Today(ctx context.Context, actor requestcontext.AuthenticatedActor) (*TodayView, error) {
	employee, err := s.employeeForUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	st, err := s.settings.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	dayStart, dayEnd := localday.Bounds(requestcontext.Now(ctx), st.Location(s.defaultLocation))

	events, err := s.store.ListBetween(ctx, actor.CompanyID, employee.ID, dayStart, dayEnd.Add(-time.Nanosecond))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load events")
	}
	return &TodayView{Events: events, Status: models.DayStatusOf(events)}, nil
}

// History returns the actor's events with from <= timestamp <= to.
func (s *Service) History(ctx context.Context, actor requestcontext.AuthenticatedActor, from, to time.Time) ([]models.Event, error) {
	if from.After(to) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "from must be before to")
	}
	employee, err := s.employeeForUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	events, err := s.store.ListBetween(ctx, actor.CompanyID, employee.ID, from, to)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load events")
	}
	return events, nil
}

// NextEventFor suggests the next event type for an employee today. It is
// empty once the day is closed.
func (s *Service) NextEventFor(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (models.DayStatus, error) {
	st, err := s.settings.Get(ctx, companyID)
	if err != nil {
		return models.DayStatus{}, err
	}
	dayStart, dayEnd := localday.Bounds(requestcontext.Now(ctx), st.Location(s.defaultLocation))
	last, err := s.store.LastBetween(ctx, companyID, employeeID, dayStart, dayEnd.Add(-time.Nanosecond))
	if err != nil {
		return models.DayStatus{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load last event")
	}
	status := models.DayStatus{Current: last.Type}
	if next, err := models.NextEventType(last.Type); err == nil {
		status.Next = next
	}
	return status, nil
}

func (s *Service) employeeForUser(ctx context.Context, actor requestcontext.AuthenticatedActor) (*empmodels.Profile, error) {
	employee, err := s.employees.FindByUser(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee profile")
	}
	if !employee.IsActive {
		return nil, dErrors.New(dErrors.CodeNotFound, "employee profile not found")
	}
	return employee, nil
}

func (s *Service) recordBlocked(ctx context.Context, event audit.Event, source models.Source) {
	event.Outcome = audit.OutcomeBlocked
	s.metrics.IncPunchBlocked(string(source), event.Reason)
	if s.audit != nil {
		s.audit.RecordBlocked(ctx, event)
	}
}

func (s *Service) countBlocked(source models.Source, err error) {
	if b, ok := block.As(err); ok {
		s.metrics.IncPunchBlocked(string(source), string(b.Code))
	}
}

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
