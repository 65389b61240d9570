package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/urbancanopy/auth-service/internal/auth"
	"github.com/urbancanopy/auth-service/internal/http/respond"
)

// Auth gates protected routes. It validates bearer tokens, consults the
// denylist, and attaches the resolved identity to the request context. The
// middleware touches no database; role checks compare the attached role
// against the route's declared requirement.
type Auth struct {
	tokens   *auth.TokenManager
	denylist auth.Denylist
	log      *zap.Logger
}

// NewAuth constructs the middleware.
func NewAuth(tokens *auth.TokenManager, denylist auth.Denylist, log *zap.Logger) *Auth {
	return &Auth{tokens: tokens, denylist: denylist, log: log}
}

// errTokenRevoked only ever reaches the log; clients see the same
// unauthorized response as for any other invalid token.
var errTokenRevoked = errors.New("token revoked")

// RequireAuth rejects requests without a valid, unrevoked bearer token.
// Missing, malformed, expired, and mis-signed tokens all produce the same
// unauthorized response; the precise reason goes to the log only.
func (m *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			m.reject(w, r, auth.ErrMissingCredentials)
			return
		}

		identity, err := m.tokens.Validate(raw)
		if err != nil {
			m.reject(w, r, err)
			return
		}

		revoked, err := m.denylist.IsRevoked(r.Context(), identity.TokenID)
		if err != nil {
			m.log.Error("denylist lookup failed",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		if revoked {
			m.reject(w, r, errTokenRevoked)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireRole runs after RequireAuth and rejects identities whose role does
// not match the route's requirement.
func (m *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				m.reject(w, r, auth.ErrMissingCredentials)
				return
			}
			if identity.Role != role {
				m.log.Warn("insufficient role",
					zap.String("path", r.URL.Path),
					zap.String("subject", identity.Identifier),
					zap.String("have", identity.Role),
					zap.String("want", role),
					zap.Error(auth.ErrInsufficientRole))
				respond.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reject writes the uniform unauthorized response and logs the real reason.
func (m *Auth) reject(w http.ResponseWriter, r *http.Request, reason error) {
	m.log.Warn("request rejected",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(reason))
	respond.Error(w, http.StatusUnauthorized, "unauthorized")
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Returns empty on absent or non-bearer headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
