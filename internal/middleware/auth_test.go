package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbancanopy/auth-service/internal/auth"
)

func newTestGuard(t *testing.T) (*Auth, *auth.TokenManager, *auth.MemoryDenylist) {
	t.Helper()
	tokens := auth.NewTokenManager("middleware-test-secret", "test-issuer", time.Hour)
	denylist := auth.NewMemoryDenylist()
	t.Cleanup(denylist.Close)
	return NewAuth(tokens, denylist, zap.NewNop()), tokens, denylist
}

// echoIdentity records whether the handler ran and what identity it saw.
func echoIdentity(reached *bool, got *auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		if id, ok := IdentityFromContext(r.Context()); ok {
			*got = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()
	guard, _, _ := newTestGuard(t)

	var reached bool
	var id auth.Identity
	h := guard.RequireAuth(echoIdentity(&reached, &id))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached, "handler must not run without credentials")
}

func TestRequireAuth_UniformRejectionBody(t *testing.T) {
	t.Parallel()
	guard, _, _ := newTestGuard(t)

	expired := auth.NewTokenManager("middleware-test-secret", "test-issuer", -time.Minute)
	expiredToken, err := expired.Issue("alice@example.com", "user")
	require.NoError(t, err)

	otherKey := auth.NewTokenManager("some-other-secret", "test-issuer", time.Hour)
	misSigned, err := otherKey.Issue("alice@example.com", "user")
	require.NoError(t, err)

	bodies := map[string]string{}
	for name, header := range map[string]string{
		"absent":    "",
		"malformed": "Bearer not.a.jwt",
		"expired":   "Bearer " + expiredToken,
		"wrong-key": "Bearer " + misSigned,
	} {
		var reached bool
		var id auth.Identity
		h := guard.RequireAuth(echoIdentity(&reached, &id))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.False(t, reached, name)
		bodies[name] = rec.Body.String()
	}

	// No oracle: every failure class yields the same response body.
	for name, body := range bodies {
		assert.Equal(t, bodies["absent"], body, "body for %s differs", name)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()
	guard, tokens, _ := newTestGuard(t)

	token, err := tokens.Issue("alice@example.com", "user")
	require.NoError(t, err)

	var reached bool
	var id auth.Identity
	h := guard.RequireAuth(echoIdentity(&reached, &id))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, reached)
	assert.Equal(t, "alice@example.com", id.Identifier)
	assert.Equal(t, "user", id.Role)
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	t.Parallel()
	guard, tokens, denylist := newTestGuard(t)

	token, err := tokens.Issue("alice@example.com", "user")
	require.NoError(t, err)
	identity, err := tokens.Validate(token)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), identity.TokenID, time.Hour))

	var reached bool
	var id auth.Identity
	h := guard.RequireAuth(echoIdentity(&reached, &id))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	guard, tokens, _ := newTestGuard(t)

	userToken, err := tokens.Issue("alice@example.com", "user")
	require.NoError(t, err)
	adminToken, err := tokens.Issue("root@example.com", "admin")
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"user on admin route", userToken, http.StatusForbidden},
		{"admin on admin route", adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var reached bool
			var id auth.Identity
			h := guard.RequireAuth(guard.RequireRole("admin")(echoIdentity(&reached, &id)))

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status == http.StatusOK, reached)
		})
	}
}

func TestRequireRole_WithoutRequireAuth(t *testing.T) {
	t.Parallel()
	guard, _, _ := newTestGuard(t)

	var reached bool
	var id auth.Identity
	h := guard.RequireRole("admin")(echoIdentity(&reached, &id))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer  abc ", "abc"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, bearerToken(req), "header %q", tc.header)
	}
}
