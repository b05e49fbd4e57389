// Package requesttime pins a single "now" for the lifetime of a request.
// Geofence decisions, QR date checks, lockout windows and audit timestamps
// all read the same instant.
package requesttime

import (
	"net/http"
	"time"

	"punchclock/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock for tests.
func MiddlewareWithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
