// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
// Usage in services (read values):
//
//	actor := requestcontext.Actor(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "Mozilla/5.0")
package requestcontext

import (
	"context"
	"time"

	id "punchclock/pkg/domain"
)

// Role is the caller's role within its company.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
	RoleKiosk    Role = "KIOSK"
)

// IsValid reports whether r is one of the supported roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleKiosk:
		return true
	}
	return false
}

// AuthenticatedActor identifies the session that issued the request.
// For kiosk sessions UserID is the kiosk account, not the employee punching.
type AuthenticatedActor struct {
	UserID    id.UserID
	CompanyID id.CompanyID
	Role      Role
}

type (
	actorKey       struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeyActor       = actorKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Auth context
// -----------------------------------------------------------------------------

// Actor retrieves the authenticated actor. The zero value means unauthenticated.
func Actor(ctx context.Context) AuthenticatedActor {
	if a, ok := ctx.Value(ContextKeyActor).(AuthenticatedActor); ok {
		return a
	}
	return AuthenticatedActor{}
}

// WithActor injects the authenticated actor into the context.
func WithActor(ctx context.Context, actor AuthenticatedActor) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actor)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context so every decision made
// while serving one request observes the same instant.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
