package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	"punchclock/pkg/requestcontext"
)

// Claims are the session claims minted by the identity service.
type Claims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Validator verifies HS256 session tokens.
type Validator struct {
	signingKey []byte
	issuer     string
}

func NewValidator(signingKey, issuer string) *Validator {
	return &Validator{signingKey: []byte(signingKey), issuer: issuer}
}

// ValidateToken parses the token and converts its claims into an actor.
func (v *Validator) ValidateToken(tokenString string) (requestcontext.AuthenticatedActor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return v.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return requestcontext.AuthenticatedActor{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return requestcontext.AuthenticatedActor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return requestcontext.AuthenticatedActor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return requestcontext.AuthenticatedActor{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token subject")
	}
	companyID, err := id.ParseCompanyID(claims.CompanyID)
	if err != nil {
		return requestcontext.AuthenticatedActor{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token has no company")
	}
	role := requestcontext.Role(claims.Role)
	if !role.IsValid() {
		return requestcontext.AuthenticatedActor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token role")
	}
	return requestcontext.AuthenticatedActor{UserID: userID, CompanyID: companyID, Role: role}, nil
}

// TokenValidator is satisfied by *Validator; handlers tests swap in fakes.
type TokenValidator interface {
	ValidateToken(tokenString string) (requestcontext.AuthenticatedActor, error)
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"code":"%s","message":"%s"}`, errCode, errDesc))
}

func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
				return
			}

			actor, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, actor)))
		})
	}
}

// RequireRole rejects actors whose role is not in roles. Must run after RequireAuth.
func RequireRole(logger *slog.Logger, roles ...requestcontext.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := requestcontext.Actor(ctx)
			if !slices.Contains(roles, actor.Role) {
				logger.WarnContext(ctx, "forbidden - role not allowed",
					"role", actor.Role,
					"user_id", actor.UserID.String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "Role not allowed for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
