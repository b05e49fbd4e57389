package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/platform/config"
	"punchclock/pkg/testutil"
)

// Build registers metrics globally, so this package builds a single App.
func TestBuild_InMemory(t *testing.T) {
	cfg := config.Config{
		Server: config.Server{Addr: ":0", ShutdownTimeout: time.Second, DefaultTimezone: "UTC"},
		Auth:   config.Auth{JWTSigningKey: "test-key"},
		Kiosk:  config.DefaultKiosk(),
	}
	a, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.DemoCompany.IsNil())
	assert.Len(t, a.DemoEmployees, 2)

	t.Run("health is public", func(t *testing.T) {
		rr := testutil.DoRequest(a.Handler, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
	})

	t.Run("api requires a token", func(t *testing.T) {
		rr := testutil.DoRequest(a.Handler, testutil.NewRequest(t, http.MethodGet, "/v1/timeclock/today"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("unknown timezone fails the build", func(t *testing.T) {
		bad := cfg
		bad.Server.DefaultTimezone = "Mars/Olympus"
		_, err := Build(context.Background(), bad, slog.New(slog.NewTextHandler(io.Discard, nil)))
		assert.Error(t, err)
	})
}
