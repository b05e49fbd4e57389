// Package service implements admin operations on employees: roster
// maintenance and kiosk credentials.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"punchclock/internal/employee/models"
	"punchclock/internal/qrtoken"
	settingsmodels "punchclock/internal/settings/models"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/secrets"
	"punchclock/pkg/platform/sentinel"
	"punchclock/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByID(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (*models.Profile, error)
	List(ctx context.Context, companyID id.CompanyID) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	SetPINHash(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, hash string) error
}

type SettingsProvider interface {
	Get(ctx context.Context, companyID id.CompanyID) (*settingsmodels.Settings, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	store    Store
	settings SettingsProvider
	audit    AuditRecorder
	tx       TxRunner
	logger   *slog.Logger
	newPIN   func() (string, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
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

// WithPINGenerator replaces the random PIN source used by ResetPIN.
func WithPINGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.newPIN = gen
	}
}

func New(store Store, settings SettingsProvider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		settings: settings,
		newPIN:   func() (string, error) { return secrets.GenerateDigits(4) },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = directTx{}
	}
	return s
}

// Create adds an active employee without a PIN to the company roster.
func (s *Service) Create(ctx context.Context, companyID id.CompanyID, actor id.UserID, in models.NewEmployee) (*models.Profile, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	userID := in.UserID
	if userID.IsNil() {
		userID = id.UserID(uuid.New())
	}
	profile := &models.Profile{
		ID:         id.EmployeeID(uuid.New()),
		CompanyID:  companyID,
		UserID:     userID,
		FullName:   in.FullName,
		Email:      in.Email,
		IsActive:   true,
		UserActive: true,
		CreatedAt:  requestcontext.Now(ctx),
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, profile); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "an employee with this email or user already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create employee")
		}
		return s.record(ctx, companyID, actor, profile.ID, audit.ActionEmployeeCreated)
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "employee created",
			"company_id", companyID.String(),
			"employee_id", profile.ID.String(),
		)
	}
	return profile, nil
}

// List returns every profile of the company, newest first, including
// deactivated ones.
func (s *Service) List(ctx context.Context, companyID id.CompanyID) ([]models.Profile, error) {
	profiles, err := s.store.List(ctx, companyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	return profiles, nil
}

// Update renames or (de)activates an employee. Deactivation is audited under
// its own action.
func (s *Service) Update(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID, upd models.Update) (*models.Profile, error) {
	profile, err := s.find(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	wasActive := profile.IsActive
	if err := upd.Apply(profile); err != nil {
		return nil, err
	}
	action := audit.ActionEmployeeUpdated
	if wasActive && !profile.IsActive {
		action = audit.ActionEmployeeDeactivated
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Update(ctx, profile); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "employee not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update employee")
		}
		return s.record(ctx, companyID, actor, employeeID, action)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SetPIN stores a new 4-digit PIN and clears the employee's lock state.
func (s *Service) SetPIN(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID, pin string) error {
	if err := models.ValidatePIN(pin); err != nil {
		return err
	}
	return s.storePIN(ctx, companyID, actor, employeeID, pin, audit.ActionEmployeePINSet)
}

// ResetPIN replaces the employee's PIN with a random one. The plain PIN is
// returned once and never stored.
func (s *Service) ResetPIN(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID) (string, error) {
	pin, err := s.newPIN()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate pin")
	}
	if err := s.storePIN(ctx, companyID, actor, employeeID, pin, audit.ActionEmployeePINReset); err != nil {
		return "", err
	}
	return pin, nil
}

func (s *Service) storePIN(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID, pin string, action audit.Action) error {
	if _, err := s.find(ctx, companyID, employeeID); err != nil {
		return err
	}
	hash, err := secrets.Hash(pin)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash pin")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetPINHash(ctx, companyID, employeeID, hash); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "employee not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store pin")
		}
		return s.record(ctx, companyID, actor, employeeID, action)
	})
}

// RegenerateEmployeeQR signs a personal QR token for the employee with the
// company's current secret.
func (s *Service) RegenerateEmployeeQR(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID) (string, error) {
	if _, err := s.find(ctx, companyID, employeeID); err != nil {
		return "", err
	}
	st, err := s.settings.Get(ctx, companyID)
	if err != nil {
		return "", err
	}
	token, err := qrtoken.BuildEmployee(companyID, employeeID, st.QRSecret)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign employee qr")
	}
	if err := s.record(ctx, companyID, actor, employeeID, audit.ActionEmployeeQRRegenerated); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) find(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (*models.Profile, error) {
	p, err := s.store.FindByID(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	return p, nil
}

func (s *Service) record(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID, action audit.Action) error {
	if s.audit == nil {
		return nil
	}
	err := s.audit.Record(ctx, audit.Event{
		CompanyID:  companyID,
		ActorID:    actor,
		Action:     action,
		Outcome:    audit.OutcomeSuccess,
		Entity:     "employee_profile",
		EntityID:   employeeID.String(),
		EmployeeID: employeeID.String(),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
