// Package app assembles the punchclock services from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	dashboardservice "punchclock/internal/dashboard/service"
	empmodels "punchclock/internal/employee/models"
	employeeservice "punchclock/internal/employee/service"
	"punchclock/internal/kiosk/lockout"
	kioskmetrics "punchclock/internal/kiosk/metrics"
	kioskservice "punchclock/internal/kiosk/service"
	"punchclock/internal/platform/config"
	"punchclock/internal/platform/httpserver"
	"punchclock/internal/platform/metrics"
	settingsservice "punchclock/internal/settings/service"
	tcmetrics "punchclock/internal/timeclock/metrics"
	tcservice "punchclock/internal/timeclock/service"
	httptransport "punchclock/internal/transport/http"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/audit/publishers/compliance"
	"punchclock/pkg/platform/audit/recorder"
	"punchclock/pkg/platform/middleware/auth"
)

// App is a wired server. Metrics register with the default Prometheus
// registry, so only one App may be built per process.
type App struct {
	Handler http.Handler

	// DemoCompany and DemoEmployees are set when running on in-memory stores.
	DemoCompany   id.CompanyID
	DemoEmployees []empmodels.Profile

	cfg    config.Config
	log    *slog.Logger
	deps   *infra
	server *http.Server
}

// Build connects the configured stores and wires every service.
func Build(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Server.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("load default timezone %q: %w", cfg.Server.DefaultTimezone, err)
	}

	deps, err := buildInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	auditRecorder := recorder.New(
		compliance.New(deps.audit, compliance.WithLogger(log), compliance.WithMetrics(compliance.NewMetrics())),
		recorder.WithLogger(log),
		recorder.WithMetrics(recorder.NewMetrics()),
	)

	settingsSvc := settingsservice.New(deps.settings,
		settingsservice.WithLogger(log),
		settingsservice.WithAuditRecorder(auditRecorder),
		settingsservice.WithTxRunner(deps.tx),
	)
	employeeSvc := employeeservice.New(deps.employees, settingsSvc,
		employeeservice.WithLogger(log),
		employeeservice.WithAuditRecorder(auditRecorder),
		employeeservice.WithTxRunner(deps.tx),
	)
	timeclockSvc := tcservice.New(deps.events, deps.employees, settingsSvc,
		tcservice.WithLogger(log),
		tcservice.WithMetrics(tcmetrics.New()),
		tcservice.WithAuditRecorder(auditRecorder),
		tcservice.WithTxRunner(deps.tx),
		tcservice.WithDefaultLocation(loc),
	)

	kioskMetrics := kioskmetrics.New()
	guardOpts := []lockout.Option{
		lockout.WithLogger(log),
		lockout.WithMetrics(kioskMetrics),
		lockout.WithConfig(cfg.Kiosk),
	}
	if cfg.Kiosk.ConstantTimePINScan {
		guardOpts = append(guardOpts, lockout.WithConstantTimeScan())
	}
	guard := lockout.New(deps.deviceLocks, deps.employees, guardOpts...)
	kioskSvc := kioskservice.New(settingsSvc, deps.employees, guard, timeclockSvc,
		kioskservice.WithLogger(log),
		kioskservice.WithMetrics(kioskMetrics),
		kioskservice.WithAuditRecorder(auditRecorder),
		kioskservice.WithDefaultLocation(loc),
	)

	dashboardSvc := dashboardservice.New(deps.employees, deps.events, deps.audit, settingsSvc,
		dashboardservice.WithLogger(log),
		dashboardservice.WithDefaultLocation(loc),
	)

	handler := httptransport.NewHandler(timeclockSvc, kioskSvc, settingsSvc, employeeSvc, dashboardSvc, log)
	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		Validator:       auth.NewValidator(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer),
		Metrics:         metrics.New(),
		Logger:          log,
		ReadinessChecks: deps.checks,
	})

	return &App{
		Handler:       router,
		DemoCompany:   deps.demoCompany,
		DemoEmployees: deps.demoEmployees,
		cfg:           cfg,
		log:           log,
		deps:          deps,
		server:        httpserver.New(cfg.Server, router, log),
	}, nil
}

// Run serves HTTP and relays audit events until ctx is cancelled, then
// shuts the server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("starting punchclock", "addr", a.cfg.Server.Addr, "timezone", a.cfg.Server.DefaultTimezone)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.deps.relay != nil {
		g.Go(func() error {
			return a.deps.relay.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return a.server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases database, cache and broker connections.
func (a *App) Close() {
	a.deps.Close()
}
