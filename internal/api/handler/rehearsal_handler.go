package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api/middleware"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type RehearsalHandler struct {
	rehearsalService *service.RehearsalService
	guard            *middleware.BandGuard
}

func NewRehearsalHandler(rehearsalService *service.RehearsalService, guard *middleware.BandGuard) *RehearsalHandler {
	return &RehearsalHandler{rehearsalService: rehearsalService, guard: guard}
}

func (h *RehearsalHandler) RegisterRoutes(r chi.Router) {
	// Collection routes carry the band id in the body or query string, so
	// the guards can run before the handler.
	r.With(h.guard.RequireAdmin).Post("/", h.createRehearsal)
	r.With(h.guard.RequireMember).Get("/", h.listRehearsals)

	// Item routes only learn the band after loading the rehearsal; the
	// membership check happens in the handler.
	r.Get("/{rehearsalID}", h.getRehearsal)
	r.Put("/{rehearsalID}", h.updateRehearsal)
	r.Delete("/{rehearsalID}", h.deleteRehearsal)
}

func (h *RehearsalHandler) createRehearsal(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context()).User()
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req service.CreateRehearsalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	rehearsal, err := h.rehearsalService.CreateRehearsal(r.Context(), caller.ID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, rehearsal)
}

func (h *RehearsalHandler) listRehearsals(w http.ResponseWriter, r *http.Request) {
	bandID := r.URL.Query().Get("band_id")
	rehearsals, err := h.rehearsalService.ListRehearsals(r.Context(), bandID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rehearsals)
}

func (h *RehearsalHandler) getRehearsal(w http.ResponseWriter, r *http.Request) {
	rehearsal, ok := h.loadAndAuthorize(w, r, false)
	if !ok {
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rehearsal)
}

func (h *RehearsalHandler) updateRehearsal(w http.ResponseWriter, r *http.Request) {
	rehearsal, ok := h.loadAndAuthorize(w, r, true)
	if !ok {
		return
	}

	var req service.UpdateRehearsalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.rehearsalService.UpdateRehearsal(r.Context(), rehearsal.ID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *RehearsalHandler) deleteRehearsal(w http.ResponseWriter, r *http.Request) {
	rehearsal, ok := h.loadAndAuthorize(w, r, true)
	if !ok {
		return
	}
	if err := h.rehearsalService.DeleteRehearsal(r.Context(), rehearsal.ID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadAndAuthorize fetches the rehearsal and verifies the caller's
// membership of its band, writing the error response itself on failure.
func (h *RehearsalHandler) loadAndAuthorize(w http.ResponseWriter, r *http.Request, adminOnly bool) (*model.Rehearsal, bool) {
	caller, ok := middleware.IdentityFromContext(r.Context()).User()
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return nil, false
	}

	rehearsal, err := h.rehearsalService.GetRehearsal(r.Context(), chi.URLParam(r, "rehearsalID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return nil, false
	}

	if err := h.guard.Check(r.Context(), rehearsal.BandID, caller.ID, adminOnly); err != nil {
		common.RespondWithDomainError(w, err)
		return nil, false
	}
	return rehearsal, true
}
