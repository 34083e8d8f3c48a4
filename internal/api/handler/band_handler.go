package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api/middleware"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
)

type BandHandler struct {
	bandService *service.BandService
	guard       *middleware.BandGuard
}

func NewBandHandler(bandService *service.BandService, guard *middleware.BandGuard) *BandHandler {
	return &BandHandler{bandService: bandService, guard: guard}
}

func (h *BandHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createBand)
	r.Get("/", h.listMyBands)

	r.Route("/{bandID}", func(band chi.Router) {
		band.With(h.guard.RequireMember).Get("/", h.getBand)
		band.With(h.guard.RequireAdmin).Put("/", h.updateBand)

		band.Group(func(admin chi.Router) {
			admin.Use(h.guard.RequireAdmin)
			admin.Post("/members", h.addMember)
			admin.Put("/members/{userID}", h.updateMemberRole)
			admin.Delete("/members/{userID}", h.removeMember)
		})
	})
}

func (h *BandHandler) createBand(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context()).User()
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req service.CreateBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	band, err := h.bandService.CreateBand(r.Context(), caller.ID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, band)
}

func (h *BandHandler) listMyBands(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context()).User()
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	bands, err := h.bandService.ListBandsForUser(r.Context(), caller.ID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, bands)
}

func (h *BandHandler) getBand(w http.ResponseWriter, r *http.Request) {
	band, err := h.bandService.GetBand(r.Context(), chi.URLParam(r, "bandID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, band)
}

func (h *BandHandler) updateBand(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	band, err := h.bandService.UpdateBand(r.Context(), chi.URLParam(r, "bandID"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, band)
}

func (h *BandHandler) addMember(w http.ResponseWriter, r *http.Request) {
	var req service.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	member, err := h.bandService.AddMember(r.Context(), chi.URLParam(r, "bandID"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, member)
}

func (h *BandHandler) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.bandService.UpdateMemberRole(r.Context(), chi.URLParam(r, "bandID"), chi.URLParam(r, "userID"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

func (h *BandHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	err := h.bandService.RemoveMember(r.Context(), chi.URLParam(r, "bandID"), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
