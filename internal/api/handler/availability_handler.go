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

// AvailabilityHandler serves the caller's own schedule; both the recurring
// windows and the date-specific overrides.
type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
}

func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

func (h *AvailabilityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listRecurring)
	r.Post("/", h.createRecurring)
	r.Put("/{availabilityID}", h.updateRecurring)
	r.Delete("/{availabilityID}", h.deleteRecurring)

	r.Route("/special", func(special chi.Router) {
		special.Get("/", h.listSpecial)
		special.Post("/", h.createSpecial)
		special.Put("/{availabilityID}", h.updateSpecial)
		special.Delete("/{availabilityID}", h.deleteSpecial)
	})
}

func (h *AvailabilityHandler) caller(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.IdentityFromContext(r.Context()).User()
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return nil, false
	}
	return user, true
}

func (h *AvailabilityHandler) listRecurring(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	slots, err := h.availabilityService.ListRecurring(r.Context(), caller.ID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, slots)
}

func (h *AvailabilityHandler) createRecurring(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req service.RecurringAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	slot, err := h.availabilityService.CreateRecurring(r.Context(), caller.ID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, slot)
}

func (h *AvailabilityHandler) updateRecurring(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req service.RecurringAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	slot, err := h.availabilityService.UpdateRecurring(r.Context(), caller.ID, chi.URLParam(r, "availabilityID"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, slot)
}

func (h *AvailabilityHandler) deleteRecurring(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.availabilityService.DeleteRecurring(r.Context(), caller.ID, chi.URLParam(r, "availabilityID")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AvailabilityHandler) listSpecial(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	overrides, err := h.availabilityService.ListSpecial(r.Context(), caller.ID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, overrides)
}

func (h *AvailabilityHandler) createSpecial(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req service.SpecialAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	override, err := h.availabilityService.CreateSpecial(r.Context(), caller.ID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, override)
}

func (h *AvailabilityHandler) updateSpecial(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req service.SpecialAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	override, err := h.availabilityService.UpdateSpecial(r.Context(), caller.ID, chi.URLParam(r, "availabilityID"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, override)
}

func (h *AvailabilityHandler) deleteSpecial(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.availabilityService.DeleteSpecial(r.Context(), caller.ID, chi.URLParam(r, "availabilityID")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
