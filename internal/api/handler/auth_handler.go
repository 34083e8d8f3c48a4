package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api/middleware"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
)

type AuthHandler struct {
	authService   *service.AuthService
	authenticator *middleware.Authenticator
}

func NewAuthHandler(authService *service.AuthService, authenticator *middleware.Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService, authenticator: authenticator}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.With(h.authenticator.RequireAuth).Get("/me", h.me)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		// Duplicate email keeps the exact message clients match on.
		if errors.Is(err, common.ErrConflict) {
			common.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// me returns the profile the auth middleware already resolved.
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.IdentityFromContext(r.Context()).User()
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
