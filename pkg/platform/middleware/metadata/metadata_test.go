package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"punchclock/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"first forwarded address wins", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:443", "203.0.113.7"},
		{"real ip header", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:443", "198.51.100.4"},
		{"ipv4 remote addr", nil, "192.0.2.10:5123", "192.0.2.10"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:5123", "2001:db8::1"},
		{"no information", nil, "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadataAndRequestID(t *testing.T) {
	var gotIP, gotUA, gotReqID string
	handler := RequestID(ClientMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
		gotReqID = requestcontext.RequestID(r.Context())
	})))

	t.Run("propagates inbound request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/timeclock/punch", nil)
		req.Header.Set("User-Agent", "kiosk-tablet/1.0")
		req.Header.Set("X-Real-IP", "198.51.100.4")
		req.Header.Set(RequestIDHeader, "req-123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "198.51.100.4", gotIP)
		assert.Equal(t, "kiosk-tablet/1.0", gotUA)
		assert.Equal(t, "req-123", gotReqID)
		assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
	})

	t.Run("mints request id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.NotEmpty(t, gotReqID)
		assert.Equal(t, gotReqID, rr.Header().Get(RequestIDHeader))
	})
}
