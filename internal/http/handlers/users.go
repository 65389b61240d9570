package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/urbancanopy/auth-service/internal/http/respond"
	"github.com/urbancanopy/auth-service/internal/middleware"
	"github.com/urbancanopy/auth-service/internal/models"
	"github.com/urbancanopy/auth-service/internal/models/dto"
	"github.com/urbancanopy/auth-service/internal/storage"
)

// UserHandler serves the authenticated-user endpoints.
type UserHandler struct {
	store storage.UserStore
	log   *zap.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(store storage.UserStore, log *zap.Logger) *UserHandler {
	return &UserHandler{store: store, log: log}
}

// HandleMe returns the stored record for the authenticated identity.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), identity.Identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Token outlived the account.
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.log.Error("fetch user failed", zap.String("email", identity.Identifier), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	respond.JSON(w, http.StatusOK, "ok", user)
}

// HandleUpdateRole changes a user's role. Admin-only; the route table gates
// it behind RequireRole(admin).
func (h *UserHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		respond.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	if !models.ValidRole(req.Role) {
		respond.Error(w, http.StatusBadRequest, "unknown role")
		return
	}

	updated, err := h.store.UpdateRole(r.Context(), email, req.Role)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error("update role failed", zap.String("email", email), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	actor, _ := middleware.IdentityFromContext(r.Context())
	h.log.Info("role updated",
		zap.String("email", updated.Email),
		zap.String("role", updated.Role),
		zap.String("actor", actor.Identifier))
	respond.JSON(w, http.StatusOK, "role updated", updated)
}
