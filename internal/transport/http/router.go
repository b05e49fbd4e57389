package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"punchclock/internal/platform/metrics"
	"punchclock/pkg/platform/middleware/auth"
	"punchclock/pkg/platform/middleware/metadata"
	"punchclock/pkg/platform/middleware/requesttime"
	"punchclock/pkg/requestcontext"
)

// RouterConfig carries the collaborators the router wires around the handler.
type RouterConfig struct {
	Validator auth.TokenValidator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	// ReadinessChecks are pinged by /readyz, keyed by dependency name.
	ReadinessChecks map[string]func(context.Context) error
}

const readinessTimeout = 2 * time.Second

// NewRouter mounts every route. Metrics and health endpoints are public;
// everything under /v1 requires a session token with an allowed role.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metadata.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(cfg.ReadinessChecks, cfg.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Validator, cfg.Logger))

		r.Route("/timeclock", func(r chi.Router) {
			r.Use(auth.RequireRole(cfg.Logger, requestcontext.RoleEmployee, requestcontext.RoleAdmin))
			r.Post("/punch", h.handlePunch)
			r.Get("/today", h.handleToday)
			r.Get("/history", h.handleHistory)
		})

		r.Route("/kiosk", func(r chi.Router) {
			r.Use(auth.RequireRole(cfg.Logger, requestcontext.RoleKiosk))
			r.Get("/qr", h.handleDailyQR)
			r.Post("/auth/pin", h.handleKioskAuthPIN)
			r.Post("/auth/qr", h.handleKioskAuthQR)
			r.Post("/punch", h.handleKioskPunch)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(cfg.Logger, requestcontext.RoleAdmin))
			r.Get("/settings", h.handleGetSettings)
			r.Put("/settings", h.handleUpdateSettings)
			r.Post("/settings/qr-secret", h.handleRotateQRSecret)
			r.Get("/employees", h.handleListEmployees)
			r.Post("/employees", h.handleCreateEmployee)
			r.Patch("/employees/{employeeID}", h.handleUpdateEmployee)
			r.Put("/employees/{employeeID}/pin", h.handleSetPIN)
			r.Post("/employees/{employeeID}/pin/reset", h.handleResetPIN)
			r.Post("/employees/{employeeID}/qr", h.handleRegenerateEmployeeQR)
			r.Get("/dashboard/summary", h.handleDashboardSummary)
			r.Get("/dashboard/live", h.handleDashboardLive)
		})
	})

	return r
}

// readiness answers 503 naming every dependency that failed its ping.
func readiness(checks map[string]func(context.Context) error, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var failed []string
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed = append(failed, name)
				if logger != nil {
					logger.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
				}
			}
		}
		if len(failed) > 0 {
			slices.Sort(failed)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
