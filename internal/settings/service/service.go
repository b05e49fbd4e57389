// Package service manages per-company punch policy: lazy creation with
// defaults, admin updates and QR secret rotation.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"punchclock/internal/settings/models"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/platform/secrets"
	"punchclock/pkg/platform/sentinel"
	"punchclock/pkg/requestcontext"
)

type Store interface {
	FindByCompany(ctx context.Context, companyID id.CompanyID) (*models.Settings, error)
	CreateIfAbsent(ctx context.Context, settings *models.Settings) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
	SetSecretIfEmpty(ctx context.Context, companyID id.CompanyID, secret string) (string, error)
	ReplaceSecret(ctx context.Context, companyID id.CompanyID, secret string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
}

// TxRunner runs fn in a transaction carried by the ctx it receives.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service owns company settings.
type Service struct {
	store          Store
	tx             TxRunner
	audit          AuditRecorder
	logger         *slog.Logger
	newSecret      func() (string, error)
	group          singleflight.Group
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

// WithSecretGenerator replaces the random QR secret source.
func WithSecretGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.newSecret = gen
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		newSecret: secrets.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = directTx{}
	}
	return s
}

// Get returns the company's settings, creating defaults on first use and
// filling in a QR secret when the stored one is empty. Concurrent first calls
// for the same company share one creation.
func (s *Service) Get(ctx context.Context, companyID id.CompanyID) (*models.Settings, error) {
	st, err := s.store.FindByCompany(ctx, companyID)
	if err == nil && st.QRSecret != "" {
		return st, nil
	}
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}

	v, err, _ := s.group.Do(companyID.String(), func() (any, error) {
		return s.ensure(ctx, companyID)
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*models.Settings)
	return &out, nil
}

func (s *Service) ensure(ctx context.Context, companyID id.CompanyID) (*models.Settings, error) {
	secret, err := s.newSecret()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate qr secret")
	}

	st, err := s.store.CreateIfAbsent(ctx, models.Defaults(companyID, secret, requestcontext.Now(ctx)))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create settings")
	}
	if st.QRSecret != "" {
		return st, nil
	}

	current, err := s.store.SetSecretIfEmpty(ctx, companyID, secret)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store qr secret")
	}
	st.QRSecret = current
	if s.logger != nil {
		s.logger.InfoContext(ctx, "qr secret generated for company", "company_id", companyID.String())
	}
	return st, nil
}

// Update applies a partial change and records a SETTINGS_UPDATED audit event
// in the same transaction.
func (s *Service) Update(ctx context.Context, companyID id.CompanyID, actor id.UserID, update models.Update) (*models.Settings, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	st, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	update.Apply(st, requestcontext.Now(ctx))

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, st); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save settings")
		}
		return s.record(ctx, audit.Event{
			CompanyID: companyID,
			ActorID:   actor,
			Action:    audit.ActionSettingsUpdated,
			Outcome:   audit.OutcomeSuccess,
			Entity:    "company_settings",
			EntityID:  companyID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// RotateQRSecret replaces the company's signing secret. Every daily and
// employee QR code issued under the old secret stops verifying.
func (s *Service) RotateQRSecret(ctx context.Context, companyID id.CompanyID, actor id.UserID) error {
	if _, err := s.Get(ctx, companyID); err != nil {
		return err
	}
	secret, err := s.newSecret()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate qr secret")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.ReplaceSecret(ctx, companyID, secret); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to rotate qr secret")
		}
		return s.record(ctx, audit.Event{
			CompanyID: companyID,
			ActorID:   actor,
			Action:    audit.ActionQRSecretRotated,
			Outcome:   audit.OutcomeSuccess,
			Entity:    "company_settings",
			EntityID:  companyID.String(),
		})
	})
}

func (s *Service) record(ctx context.Context, event audit.Event) error {
	if s.audit == nil {
		return nil
	}
	if err := s.audit.Record(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

