package e2e

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/cucumber/godog"

	"punchclock/internal/app"
	"punchclock/internal/platform/config"
)

const signingKey = "e2e-signing-key"

func TestFeatures(t *testing.T) {
	cfg := config.Config{
		Server: config.Server{ShutdownTimeout: time.Second, DefaultTimezone: "America/Sao_Paulo"},
		Auth:   config.Auth{JWTSigningKey: signingKey},
		Kiosk:  config.DefaultKiosk(),
	}
	a, err := app.Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()

	server := httptest.NewServer(a.Handler)
	defer server.Close()

	suite := godog.TestSuite{
		Name: "punchclock",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			RegisterSteps(ctx, NewTestContext(server, signingKey, a.DemoCompany, a.DemoEmployees))
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("e2e scenarios failed")
	}
}
