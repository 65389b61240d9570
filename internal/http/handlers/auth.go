package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/urbancanopy/auth-service/internal/auth"
	"github.com/urbancanopy/auth-service/internal/http/respond"
	"github.com/urbancanopy/auth-service/internal/middleware"
	"github.com/urbancanopy/auth-service/internal/models"
	"github.com/urbancanopy/auth-service/internal/models/dto"
	"github.com/urbancanopy/auth-service/internal/storage"
)

// AuthHandler owns the register, login, and logout endpoints.
type AuthHandler struct {
	store       storage.UserStore
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenManager
	denylist    auth.Denylist
	log         *zap.Logger
	passwordMin int

	// dummyHash is verified against when login hits an unknown email, so
	// unknown-user and wrong-password paths cost the same.
	dummyHash string
}

// NewAuthHandler constructs the handler. The dummy hash is computed once up
// front; failing that is a programming error surfaced at startup.
func NewAuthHandler(store storage.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, denylist auth.Denylist, passwordMin int, log *zap.Logger) (*AuthHandler, error) {
	dummy, err := hasher.Hash("decoy-password-for-timing")
	if err != nil {
		return nil, err
	}
	return &AuthHandler{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		denylist:    denylist,
		log:         log,
		passwordMin: passwordMin,
		dummyHash:   dummy,
	}, nil
}

// HandleRegister creates a new account with the default role. It never
// issues a token: a successful registration is followed by an explicit
// login.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if err := h.validateRegistration(email, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("hash password failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to process registration")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			// The one conflict whose detail is safe to show callers.
			respond.Error(w, http.StatusConflict, auth.ErrDuplicateIdentifier.Error())
		default:
			h.log.Error("create user failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	h.log.Info("user registered", zap.String("email", created.Email))
	respond.JSON(w, http.StatusCreated, "user created", created)
}

// HandleLogin verifies credentials and issues a session token. Unknown
// email and wrong password produce byte-identical responses.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.hasher.Verify(req.Password, h.dummyHash)
			h.rejectLogin(w, email, auth.ErrInvalidCredentials)
			return
		}
		h.log.Error("fetch user failed", zap.String("email", email), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		h.rejectLogin(w, email, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		h.log.Error("issue token failed", zap.String("email", email), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.log.Info("login succeeded", zap.String("email", email))
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, User: user})
}

// HandleLogout revokes the presented token for the rest of its lifetime.
// Runs behind RequireAuth, so the identity is already resolved.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	remaining := time.Until(identity.ExpiresAt)
	if err := h.denylist.Revoke(r.Context(), identity.TokenID, remaining); err != nil {
		h.log.Error("revoke token failed",
			zap.String("email", identity.Identifier),
			zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	h.log.Info("token revoked",
		zap.String("email", identity.Identifier),
		zap.String("token_id", identity.TokenID))
	respond.JSON(w, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) rejectLogin(w http.ResponseWriter, email string, reason error) {
	// Same status and body whether the account exists or not.
	h.log.Warn("login rejected", zap.String("email", email), zap.Error(reason))
	respond.Error(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
}

func (h *AuthHandler) validateRegistration(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if utf8.RuneCountInString(password) < h.passwordMin || !utf8.ValidString(password) {
		return errors.New("password does not meet the minimum length")
	}
	return nil
}
