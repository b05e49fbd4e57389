// Package httptransport exposes the punch, kiosk and admin operations over
// HTTP. Handlers decode input, call one service method and encode the
// result; policy lives in the services.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	dashmodels "punchclock/internal/dashboard/models"
	empmodels "punchclock/internal/employee/models"
	kioskmodels "punchclock/internal/kiosk/models"
	settingsmodels "punchclock/internal/settings/models"
	tcmodels "punchclock/internal/timeclock/models"
	tcservice "punchclock/internal/timeclock/service"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	"punchclock/pkg/requestcontext"
)

const maxDeviceLabelLength = 80

type TimeclockService interface {
	Punch(ctx context.Context, actor requestcontext.AuthenticatedActor, req tcservice.PunchRequest) (*tcmodels.Event, error)
	Today(ctx context.Context, actor requestcontext.AuthenticatedActor) (*tcservice.TodayView, error)
	History(ctx context.Context, actor requestcontext.AuthenticatedActor, from, to time.Time) ([]tcmodels.Event, error)
}

type KioskService interface {
	DailyQR(ctx context.Context, companyID id.CompanyID) (*kioskmodels.DailyQR, error)
	AuthByPIN(ctx context.Context, actor requestcontext.AuthenticatedActor, pin, deviceLabel string) (*kioskmodels.Identity, error)
	AuthByQR(ctx context.Context, actor requestcontext.AuthenticatedActor, token, deviceLabel string) (*kioskmodels.Identity, error)
	KioskPunch(ctx context.Context, actor requestcontext.AuthenticatedActor, employeeID id.EmployeeID, method tcmodels.KioskMethod, deviceLabel string) (*tcservice.KioskPunchResult, error)
}

type SettingsService interface {
	Get(ctx context.Context, companyID id.CompanyID) (*settingsmodels.Settings, error)
	Update(ctx context.Context, companyID id.CompanyID, actor id.UserID, update settingsmodels.Update) (*settingsmodels.Settings, error)
	RotateQRSecret(ctx context.Context, companyID id.CompanyID, actor id.UserID) error
}

type EmployeeService interface {
	Create(ctx context.Context, companyID id.CompanyID, actor id.UserID, in empmodels.NewEmployee) (*empmodels.Profile, error)
	List(ctx context.Context, companyID id.CompanyID) ([]empmodels.Profile, error)
	Update(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID, upd empmodels.Update) (*empmodels.Profile, error)
	SetPIN(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID, pin string) error
	ResetPIN(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID) (string, error)
	RegenerateEmployeeQR(ctx context.Context, companyID id.CompanyID, actor id.UserID, employeeID id.EmployeeID) (string, error)
}

type DashboardService interface {
	Summary(ctx context.Context, companyID id.CompanyID, date string) (*dashmodels.Summary, error)
	Live(ctx context.Context, companyID id.CompanyID, date string) ([]dashmodels.LiveRow, error)
}

// Handler serves every API route.
type Handler struct {
	timeclock TimeclockService
	kiosk     KioskService
	settings  SettingsService
	employees EmployeeService
	dashboard DashboardService
	logger    *slog.Logger
}

func NewHandler(timeclock TimeclockService, kiosk KioskService, settings SettingsService, employees EmployeeService, dashboard DashboardService, logger *slog.Logger) *Handler {
	return &Handler{
		timeclock: timeclock,
		kiosk:     kiosk,
		settings:  settings,
		employees: employees,
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, r, h.logger, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

func validDeviceLabel(label string) error {
	if len(strings.TrimSpace(label)) > maxDeviceLabelLength {
		return dErrors.New(dErrors.CodeInvalidInput, "deviceLabel must be at most 80 characters")
	}
	return nil
}
