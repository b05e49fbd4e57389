package testutil

import (
	"net/http"
	"time"

	id "punchclock/pkg/domain"
	"punchclock/pkg/requestcontext"
)

// WithActor attaches an authenticated actor to the request, as the auth
// middleware would after validating a bearer token.
func WithActor(req *http.Request, userID id.UserID, companyID id.CompanyID, role requestcontext.Role) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), requestcontext.AuthenticatedActor{
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	})
	return req.WithContext(ctx)
}

// WithTime pins the request clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
