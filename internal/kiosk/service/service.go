// Package service implements the kiosk flows: the daily company QR a kiosk
// displays, identifying an employee at the kiosk by PIN or personal QR, and
// recording the identified employee's punch.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"punchclock/internal/block"
	empmodels "punchclock/internal/employee/models"
	"punchclock/internal/kiosk/metrics"
	"punchclock/internal/kiosk/models"
	"punchclock/internal/localday"
	"punchclock/internal/qrtoken"
	settingsmodels "punchclock/internal/settings/models"
	tcmodels "punchclock/internal/timeclock/models"
	tcservice "punchclock/internal/timeclock/service"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/sentinel"
	"punchclock/pkg/requestcontext"
)

var tracer = otel.Tracer("punchclock/internal/kiosk/service")

type SettingsProvider interface {
	Get(ctx context.Context, companyID id.CompanyID) (*settingsmodels.Settings, error)
}

type EmployeeDirectory interface {
	FindByID(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (*empmodels.Profile, error)
	ListPINRoster(ctx context.Context, companyID id.CompanyID) ([]empmodels.PINCandidate, error)
}

type PINAuthenticator interface {
	AuthenticateByPIN(ctx context.Context, candidates []empmodels.PINCandidate, pin string, key models.DeviceKey, now time.Time) (*empmodels.PINCandidate, error)
	CheckDevice(ctx context.Context, key models.DeviceKey, now time.Time) error
}

type Timeclock interface {
	NextEventFor(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (tcmodels.DayStatus, error)
	KioskPunch(ctx context.Context, actor requestcontext.AuthenticatedActor, employeeID id.EmployeeID, method tcmodels.KioskMethod, deviceLabel string) (*tcservice.KioskPunchResult, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
	RecordBlocked(ctx context.Context, event audit.Event)
}

type Service struct {
	settings        SettingsProvider
	employees       EmployeeDirectory
	pins            PINAuthenticator
	timeclock       Timeclock
	audit           AuditRecorder
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

func WithDefaultLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.defaultLocation = loc
	}
}

func New(settings SettingsProvider, employees EmployeeDirectory, pins PINAuthenticator, timeclock Timeclock, opts ...Option) *Service {
	s := &Service{
		settings:  settings,
		employees: employees,
		pins:      pins,
		timeclock: timeclock,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultLocation == nil {
		s.defaultLocation = time.Local
	}
	return s
}

// DailyQR signs today's company token. It expires at the next local midnight.
func (s *Service) DailyQR(ctx context.Context, companyID id.CompanyID) (*models.DailyQR, error) {
	st, err := s.settings.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	loc := st.Location(s.defaultLocation)
	now := requestcontext.Now(ctx)
	date := localday.Date(now, loc)

	token, err := qrtoken.BuildDaily(companyID, date, st.QRSecret)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign daily qr")
	}
	return &models.DailyQR{
		Date:        date,
		Token:       token,
		ExpiresAt:   localday.NextMidnight(now, loc),
		DeviceLabel: st.KioskDeviceLabel,
	}, nil
}

// AuthByPIN identifies an employee by kiosk PIN.
func (s *Service) AuthByPIN(ctx context.Context, actor requestcontext.AuthenticatedActor, pin, deviceLabel string) (*models.Identity, error) {
	ctx, span := tracer.Start(ctx, "kiosk.AuthByPIN")
	defer span.End()

	if err := empmodels.ValidatePIN(pin); err != nil {
		return nil, err
	}
	deviceLabel = strings.TrimSpace(deviceLabel)

	key := models.NewDeviceKey(actor.CompanyID, actor.UserID, deviceLabel)
	now := requestcontext.Now(ctx)
	if err := s.pins.CheckDevice(ctx, key, now); err != nil {
		if b, ok := block.As(err); ok {
			s.authFailed(ctx, actor, tcmodels.KioskMethodPIN, b.Code, id.EmployeeID{}, deviceLabel)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	roster, err := s.employees.ListPINRoster(ctx, actor.CompanyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pin roster")
	}

	matched, err := s.pins.AuthenticateByPIN(ctx, roster, pin, key, now)
	if err != nil {
		if b, ok := block.As(err); ok {
			var employeeID id.EmployeeID
			if matched != nil {
				employeeID = matched.EmployeeID
			}
			s.authFailed(ctx, actor, tcmodels.KioskMethodPIN, b.Code, employeeID, deviceLabel)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	identity := &models.Identity{
		EmployeeID: matched.EmployeeID,
		UserID:     matched.UserID,
		FullName:   matched.FullName,
		Email:      matched.Email,
	}
	if err := s.authSucceeded(ctx, actor, tcmodels.KioskMethodPIN, identity, deviceLabel); err != nil {
		return nil, err
	}
	return identity, nil
}

// AuthByQR identifies an employee by the personal QR token printed for them.
func (s *Service) AuthByQR(ctx context.Context, actor requestcontext.AuthenticatedActor, token, deviceLabel string) (*models.Identity, error) {
	ctx, span := tracer.Start(ctx, "kiosk.AuthByQR")
	defer span.End()

	deviceLabel = strings.TrimSpace(deviceLabel)
	token = strings.TrimSpace(token)
	if token == "" {
		s.authFailed(ctx, actor, tcmodels.KioskMethodEmployeeQR, block.InvalidEmployeeQR, id.EmployeeID{}, deviceLabel)
		return nil, block.New(block.InvalidEmployeeQR)
	}

	st, err := s.settings.Get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	employeeID, err := qrtoken.VerifyEmployee(token, st.QRSecret, actor.CompanyID)
	if err != nil {
		s.authFailed(ctx, actor, tcmodels.KioskMethodEmployeeQR, block.InvalidEmployeeQR, id.EmployeeID{}, deviceLabel)
		span.SetStatus(codes.Error, err.Error())
		return nil, block.New(block.InvalidEmployeeQR)
	}

	employee, err := s.employees.FindByID(ctx, actor.CompanyID, employeeID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if err != nil || !employee.CanPunch() {
		s.authFailed(ctx, actor, tcmodels.KioskMethodEmployeeQR, block.EmployeeNotFound, employeeID, deviceLabel)
		return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
	}

	identity := &models.Identity{
		EmployeeID: employee.ID,
		UserID:     employee.UserID,
		FullName:   employee.FullName,
		Email:      employee.Email,
	}
	if err := s.authSucceeded(ctx, actor, tcmodels.KioskMethodEmployeeQR, identity, deviceLabel); err != nil {
		return nil, err
	}
	return identity, nil
}

// KioskPunch records the next event for an employee the kiosk identified.
func (s *Service) KioskPunch(ctx context.Context, actor requestcontext.AuthenticatedActor, employeeID id.EmployeeID, method tcmodels.KioskMethod, deviceLabel string) (*tcservice.KioskPunchResult, error) {
	return s.timeclock.KioskPunch(ctx, actor, employeeID, method, deviceLabel)
}

// authSucceeded audits the identification and fills in the punch suggestion.
func (s *Service) authSucceeded(ctx context.Context, actor requestcontext.AuthenticatedActor, method tcmodels.KioskMethod, identity *models.Identity, deviceLabel string) error {
	s.metrics.IncAuthAttempt(string(method), "OK")
	if s.audit != nil {
		err := s.audit.Record(ctx, audit.Event{
			CompanyID:   actor.CompanyID,
			ActorID:     actor.UserID,
			Action:      audit.ActionKioskAuthSuccess,
			Outcome:     audit.OutcomeSuccess,
			Entity:      "employee_profile",
			EntityID:    identity.EmployeeID.String(),
			EmployeeID:  identity.EmployeeID.String(),
			Method:      string(method),
			DeviceLabel: deviceLabel,
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
		}
	}

	status, err := s.timeclock.NextEventFor(ctx, actor.CompanyID, identity.EmployeeID)
	if err != nil {
		return err
	}
	identity.CurrentType = string(status.Current)
	identity.NextEventType = string(status.Next)
	return nil
}

func (s *Service) authFailed(ctx context.Context, actor requestcontext.AuthenticatedActor, method tcmodels.KioskMethod, reason block.Code, employeeID id.EmployeeID, deviceLabel string) {
	s.metrics.IncAuthAttempt(string(method), string(reason))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "kiosk identification failed",
			"company_id", actor.CompanyID.String(),
			"method", string(method),
			"reason", string(reason),
			"device_label", deviceLabel,
		)
	}
	if s.audit == nil {
		return
	}
	event := audit.Event{
		CompanyID:   actor.CompanyID,
		ActorID:     actor.UserID,
		Action:      audit.ActionKioskAuthFailed,
		Outcome:     audit.OutcomeBlocked,
		Reason:      string(reason),
		Entity:      "employee_profile",
		Method:      string(method),
		DeviceLabel: deviceLabel,
	}
	if !employeeID.IsNil() {
		event.EntityID = employeeID.String()
		event.EmployeeID = employeeID.String()
	}
	s.audit.RecordBlocked(ctx, event)
}
