package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
)

type VenueHandler struct {
	venueService *service.VenueService
}

func NewVenueHandler(venueService *service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listVenues)
	r.Post("/", h.createVenue)
	r.Get("/{venueID}", h.getVenue)
	r.Put("/{venueID}", h.updateVenue)
	r.Delete("/{venueID}", h.deleteVenue)
}

func (h *VenueHandler) listVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.ListVenues(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, venues)
}

func (h *VenueHandler) createVenue(w http.ResponseWriter, r *http.Request) {
	var req service.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	venue, err := h.venueService.CreateVenue(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, venue)
}

func (h *VenueHandler) getVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venueService.GetVenue(r.Context(), chi.URLParam(r, "venueID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, venue)
}

func (h *VenueHandler) updateVenue(w http.ResponseWriter, r *http.Request) {
	var req service.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	venue, err := h.venueService.UpdateVenue(r.Context(), chi.URLParam(r, "venueID"), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, venue)
}

func (h *VenueHandler) deleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := h.venueService.DeleteVenue(r.Context(), chi.URLParam(r, "venueID")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
