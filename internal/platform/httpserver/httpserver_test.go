package httpserver

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/platform/config"
)

func TestNew(t *testing.T) {
	t.Run("zero timeouts use defaults", func(t *testing.T) {
		srv := New(config.Server{Addr: ":9090"}, http.NotFoundHandler(), nil)

		assert.Equal(t, ":9090", srv.Addr)
		assert.Equal(t, defaultReadHeaderTimeout, srv.ReadHeaderTimeout)
		assert.Equal(t, defaultReadTimeout, srv.ReadTimeout)
		assert.Equal(t, defaultWriteTimeout, srv.WriteTimeout)
		assert.Equal(t, defaultIdleTimeout, srv.IdleTimeout)
		assert.Nil(t, srv.ErrorLog)
	})

	t.Run("configured timeouts win", func(t *testing.T) {
		srv := New(config.Server{WriteTimeout: 3 * time.Second, IdleTimeout: time.Minute}, http.NotFoundHandler(), nil)

		assert.Equal(t, 3*time.Second, srv.WriteTimeout)
		assert.Equal(t, time.Minute, srv.IdleTimeout)
		assert.Equal(t, defaultReadTimeout, srv.ReadTimeout)
	})

	t.Run("server errors go to the structured logger", func(t *testing.T) {
		var buf bytes.Buffer
		srv := New(config.Server{}, http.NotFoundHandler(), slog.New(slog.NewTextHandler(&buf, nil)))
		require.NotNil(t, srv.ErrorLog)

		srv.ErrorLog.Print("http: TLS handshake error")
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "TLS handshake error")
	})
}
