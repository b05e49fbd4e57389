// Package lockout throttles kiosk PIN identification at two levels: an
// ephemeral per-device counter and the persistent per-employee lock.
package lockout

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"punchclock/internal/block"
	empmodels "punchclock/internal/employee/models"
	"punchclock/internal/kiosk/metrics"
	"punchclock/internal/kiosk/models"
	"punchclock/internal/platform/config"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	"punchclock/pkg/platform/secrets"
)

var tracer = otel.Tracer("punchclock/internal/kiosk/lockout")

// DeviceLockStore holds per-device throttle state.
type DeviceLockStore interface {
	Get(ctx context.Context, key models.DeviceKey, now time.Time) (models.DeviceLockState, error)
	Update(ctx context.Context, key models.DeviceKey, now time.Time, fn func(*models.DeviceLockState)) (models.DeviceLockState, error)
	Delete(ctx context.Context, key models.DeviceKey) error
}

// EmployeeLockStore clears an employee's persistent PIN lock.
type EmployeeLockStore interface {
	ResetPINLock(ctx context.Context, employeeID id.EmployeeID) error
}

// PINMatcher compares a PIN with a stored hash.
type PINMatcher func(pin, hash string) (bool, error)

type Guard struct {
	devices          DeviceLockStore
	employees        EmployeeLockStore
	matches          PINMatcher
	config           config.Kiosk
	constantTimeScan bool
	logger           *slog.Logger
	metrics          *metrics.Metrics
}

type Option func(*Guard)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

func WithConfig(cfg config.Kiosk) Option {
	return func(g *Guard) {
		g.config = cfg
		g.constantTimeScan = cfg.ConstantTimePINScan
	}
}

// WithConstantTimeScan compares the PIN against every candidate before
// picking the first match, so response time does not depend on roster order.
func WithConstantTimeScan() Option {
	return func(g *Guard) {
		g.constantTimeScan = true
	}
}

func WithPINMatcher(m PINMatcher) Option {
	return func(g *Guard) {
		g.matches = m
	}
}

func New(devices DeviceLockStore, employees EmployeeLockStore, opts ...Option) *Guard {
	g := &Guard{
		devices:   devices,
		employees: employees,
		matches:   secrets.Matches,
		config:    config.DefaultKiosk(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AuthenticateByPIN finds the candidate whose PIN hash matches pin.
//
// A locked device is rejected before any hash is compared. A wrong PIN counts
// against the device; reaching the attempt limit locks it and resets the
// counter. A PIN that matches an employee under a persistent lock is rejected
// with EMPLOYEE scope, also counts against the device, and returns the matched
// candidate alongside the block so the caller can audit who was tried.
// Success clears the employee lock and the device state.
func (g *Guard) AuthenticateByPIN(ctx context.Context, candidates []empmodels.PINCandidate, pin string, key models.DeviceKey, now time.Time) (*empmodels.PINCandidate, error) {
	ctx, span := tracer.Start(ctx, "kiosk.AuthenticateByPIN")
	defer span.End()
	span.SetAttributes(attribute.String("device_label", key.Label))

	if err := g.CheckDevice(ctx, key, now); err != nil {
		return nil, err
	}

	matched, err := g.match(candidates, pin)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compare pin")
	}

	if matched == nil {
		state, err := g.registerFailure(ctx, key, now)
		if err != nil {
			return nil, err
		}
		if state.LockedAt(now) {
			g.metrics.IncPINLockout(string(block.ScopeDevice))
			g.logLocked(ctx, key, state.LockedUntil)
			return nil, block.Locked(block.ScopeDevice, models.RetryAfterSeconds(state.LockedUntil, now))
		}
		return nil, block.New(block.PINInvalid)
	}

	if matched.LockedAt(now) {
		if _, err := g.registerFailure(ctx, key, now); err != nil {
			return nil, err
		}
		g.metrics.IncPINLockout(string(block.ScopeEmployee))
		return matched, block.Locked(block.ScopeEmployee, models.RetryAfterSeconds(*matched.PINLockedUntil, now))
	}

	if err := g.employees.ResetPINLock(ctx, matched.EmployeeID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset employee pin lock")
	}
	if err := g.devices.Delete(ctx, key); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset device lock")
	}
	return matched, nil
}

// CheckDevice returns PIN_LOCKED with DEVICE scope while key is locked.
// Callers use it to turn a locked kiosk away before loading the roster.
func (g *Guard) CheckDevice(ctx context.Context, key models.DeviceKey, now time.Time) error {
	state, err := g.devices.Get(ctx, key, now)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read device lock")
	}
	if state.LockedAt(now) {
		g.metrics.IncPINLockout(string(block.ScopeDevice))
		return block.Locked(block.ScopeDevice, models.RetryAfterSeconds(state.LockedUntil, now))
	}
	return nil
}

func (g *Guard) match(candidates []empmodels.PINCandidate, pin string) (*empmodels.PINCandidate, error) {
	var (
		matched  *empmodels.PINCandidate
		compared int
	)
	defer func() { g.metrics.ObserveScan(compared) }()

	for i := range candidates {
		if candidates[i].PINHash == "" {
			continue
		}
		if matched != nil && !g.constantTimeScan {
			break
		}
		compared++
		ok, err := g.matches(pin, candidates[i].PINHash)
		if err != nil {
			return nil, err
		}
		if ok && matched == nil {
			c := candidates[i]
			matched = &c
		}
	}
	return matched, nil
}

func (g *Guard) registerFailure(ctx context.Context, key models.DeviceKey, now time.Time) (models.DeviceLockState, error) {
	state, err := g.devices.Update(ctx, key, now, func(st *models.DeviceLockState) {
		st.FailedAttempts++
		st.LastAttemptAt = now
		if st.FailedAttempts >= g.config.DeviceMaxAttempts {
			st.FailedAttempts = 0
			st.LockedUntil = now.Add(g.config.DeviceLockFor)
		}
	})
	if err != nil {
		return models.DeviceLockState{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record device pin failure")
	}
	return state, nil
}

func (g *Guard) logLocked(ctx context.Context, key models.DeviceKey, until time.Time) {
	if g.logger == nil {
		return
	}
	g.logger.WarnContext(ctx, "kiosk device pin locked",
		"company_id", key.CompanyID.String(),
		"kiosk_user_id", key.UserID.String(),
		"device_label", key.Label,
		"locked_until", until,
	)
}
