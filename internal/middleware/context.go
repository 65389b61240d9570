package middleware

import (
	"context"

	"github.com/urbancanopy/auth-service/internal/auth"
)

// Context key type to avoid collisions with other packages' values.
type contextKey string

const identityKey contextKey = "auth_identity"

// WithIdentity attaches a resolved identity to the request context.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the identity placed by RequireAuth. The
// second return is false on requests that never passed through it.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
