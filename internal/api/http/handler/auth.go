package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
	"github.com/eospatial/geoforestry/internal/service"
)

// AuthService manages admin credentials and sessions.
type AuthService interface {
	SignIn(ctx context.Context, username, password string) (string, error)
	AddAdmin(ctx context.Context, params service.AddAdminParams) (model.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error
}

// Auth handles admin authentication and account management endpoints.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(service AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string `json:"token"`
}

func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{Token: token})
}

type addAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type adminResponse struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// requireSuperAdmin allows only super-admins to manage accounts.
func (h *Auth) requireSuperAdmin(w http.ResponseWriter, r *http.Request) bool {
	_, role, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if role != model.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "super admin role required")
		return false
	}
	return true
}

func (h *Auth) AddAdmin(w http.ResponseWriter, r *http.Request) {
	if !h.requireSuperAdmin(w, r) {
		return
	}

	var req addAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleAdmin
	}
	if role != model.RoleAdmin && role != model.RoleSuperAdmin {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.service.AddAdmin(r.Context(), service.AddAdminParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, adminResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Auth) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if !h.requireSuperAdmin(w, r) {
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdatePassword(r.Context(), userID, req.Password); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
