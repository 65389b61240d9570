package auth

import "errors"

// Failure kinds produced by the auth core. Handlers and middleware log the
// precise kind for operators but collapse token and credential failures to a
// single unauthorized response at the HTTP boundary, so clients cannot use
// the distinction as an oracle. ErrDuplicateIdentifier is the one kind whose
// detail is safe to return to callers.
var (
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingCredentials  = errors.New("missing credentials")
	ErrExpiredToken        = errors.New("token expired")
	ErrInvalidSignature    = errors.New("token signature invalid")
	ErrMalformedToken      = errors.New("token malformed")
	ErrInsufficientRole    = errors.New("insufficient role")
)
