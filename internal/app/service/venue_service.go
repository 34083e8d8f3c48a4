package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
)

type VenueService struct {
	venueRepo repository.VenueRepository
}

func NewVenueService(venueRepo repository.VenueRepository) *VenueService {
	return &VenueService{venueRepo: venueRepo}
}

type VenueRequest struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Capacity     *int     `json:"capacity,omitempty"`
	HourlyRate   *float64 `json:"hourlyRate,omitempty"`
	ContactName  *string  `json:"contactName,omitempty"`
	ContactPhone *string  `json:"contactPhone,omitempty"`
}

func (r *VenueRequest) validate() error {
	var fields []common.FieldError
	if r.Name == "" {
		fields = append(fields, common.FieldError{Field: "name", Message: "is required"})
	}
	if r.Address == "" {
		fields = append(fields, common.FieldError{Field: "address", Message: "is required"})
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

func (s *VenueService) CreateVenue(ctx context.Context, req VenueRequest) (*model.Venue, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	venue := &model.Venue{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Address:      req.Address,
		Capacity:     req.Capacity,
		HourlyRate:   req.HourlyRate,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *VenueService) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	return s.venueRepo.FindByID(ctx, id)
}

func (s *VenueService) ListVenues(ctx context.Context) ([]model.Venue, error) {
	return s.venueRepo.List(ctx)
}

func (s *VenueService) UpdateVenue(ctx context.Context, id string, req VenueRequest) (*model.Venue, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	venue, err := s.venueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.Name = req.Name
	venue.Address = req.Address
	venue.Capacity = req.Capacity
	venue.HourlyRate = req.HourlyRate
	venue.ContactName = req.ContactName
	venue.ContactPhone = req.ContactPhone

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	return venue, nil
}

func (s *VenueService) DeleteVenue(ctx context.Context, id string) error {
	return s.venueRepo.Delete(ctx, id)
}
