package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the result of validating a token: the claims a request is
// allowed to act under. It lives only for the lifetime of the request that
// presented the token.
type Identity struct {
	Identifier string
	Role       string
	TokenID    string
	ExpiresAt  time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager issues and validates signed HS256 session tokens. The signing
// key is fixed at construction and never exposed or mutated.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and
// token lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token asserting the given identifier and role, valid from
// now until now plus the configured lifetime. Each token carries a unique ID
// so it can be individually revoked.
func (t *TokenManager) Issue(identifier, role string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   identifier,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks signature and time bounds and returns the embedded
// identity. Expiry is compared with zero leeway. The returned errors
// distinguish expiry, bad signature, and unparseable input for logging;
// callers surface all three identically to clients.
func (t *TokenManager) Validate(raw string) (Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithLeeway(0),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Identity{}, ErrInvalidSignature
	case err != nil:
		return Identity{}, ErrMalformedToken
	case !token.Valid:
		return Identity{}, ErrInvalidSignature
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return Identity{
		Identifier: claims.Subject,
		Role:       claims.Role,
		TokenID:    claims.ID,
		ExpiresAt:  expires,
	}, nil
}
