package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"punchclock/pkg/requestcontext"
	"punchclock/pkg/testutil"
)

func TestMiddlewareWithClock(t *testing.T) {
	pinned := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return pinned
	}

	var seen []time.Time
	h := MiddlewareWithClock(clock)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = append(seen, requestcontext.Now(r.Context()), requestcontext.Now(r.Context()))
	}))

	req := testutil.WithTime(httptest.NewRequest(http.MethodGet, "/", nil), pinned.Add(-24*time.Hour))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, calls)
	assert.Equal(t, []time.Time{pinned, pinned}, seen)
}

func TestMiddleware(t *testing.T) {
	before := time.Now()
	var got time.Time
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = requestcontext.Now(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, got.Before(before))
	assert.False(t, got.After(time.Now()))
}
