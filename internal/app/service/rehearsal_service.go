package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/realtime"
)

type RehearsalService struct {
	rehearsalRepo repository.RehearsalRepository
	venueRepo     repository.VenueRepository
	publisher     realtime.Publisher
	logger        zerolog.Logger
}

func NewRehearsalService(
	rehearsalRepo repository.RehearsalRepository,
	venueRepo repository.VenueRepository,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) *RehearsalService {
	return &RehearsalService{
		rehearsalRepo: rehearsalRepo,
		venueRepo:     venueRepo,
		publisher:     publisher,
		logger:        logger.With().Str("component", "rehearsal_service").Logger(),
	}
}

type CreateRehearsalRequest struct {
	BandID   string    `json:"bandId"`
	VenueID  *string   `json:"venueId,omitempty"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Notes    *string   `json:"notes,omitempty"`
}

type UpdateRehearsalRequest struct {
	VenueID  *string               `json:"venueId,omitempty"`
	Title    string                `json:"title"`
	StartsAt time.Time             `json:"startsAt"`
	EndsAt   time.Time             `json:"endsAt"`
	Notes    *string               `json:"notes,omitempty"`
	Status   model.RehearsalStatus `json:"status"`
}

func validateRehearsalWindow(title string, startsAt, endsAt time.Time) error {
	var fields []common.FieldError
	if title == "" {
		fields = append(fields, common.FieldError{Field: "title", Message: "is required"})
	}
	if startsAt.IsZero() || endsAt.IsZero() {
		fields = append(fields, common.FieldError{Field: "startsAt", Message: "start and end times are required"})
	} else if !endsAt.After(startsAt) {
		fields = append(fields, common.FieldError{Field: "endsAt", Message: "must be after startsAt"})
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

func (s *RehearsalService) CreateRehearsal(ctx context.Context, creatorID string, req CreateRehearsalRequest) (*model.Rehearsal, error) {
	if req.BandID == "" {
		return nil, fmt.Errorf("band id is required: %w", common.ErrBadRequest)
	}
	if err := validateRehearsalWindow(req.Title, req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if req.VenueID != nil {
		if _, err := s.venueRepo.FindByID(ctx, *req.VenueID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, fmt.Errorf("venue not found: %w", common.ErrNotFound)
			}
			return nil, err
		}
	}

	rehearsal := &model.Rehearsal{
		ID:          uuid.NewString(),
		BandID:      req.BandID,
		VenueID:     req.VenueID,
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Notes:       req.Notes,
		Status:      model.RehearsalScheduled,
		CreatedByID: creatorID,
	}
	if err := s.rehearsalRepo.Create(ctx, rehearsal); err != nil {
		return nil, fmt.Errorf("failed to create rehearsal: %w", err)
	}

	s.publish(ctx, rehearsal.BandID, realtime.EventRehearsalScheduled, rehearsal)
	return rehearsal, nil
}

func (s *RehearsalService) GetRehearsal(ctx context.Context, id string) (*model.Rehearsal, error) {
	return s.rehearsalRepo.FindByID(ctx, id)
}

func (s *RehearsalService) ListRehearsals(ctx context.Context, bandID string) ([]model.Rehearsal, error) {
	return s.rehearsalRepo.ListByBand(ctx, bandID)
}

func (s *RehearsalService) UpdateRehearsal(ctx context.Context, id string, req UpdateRehearsalRequest) (*model.Rehearsal, error) {
	if err := validateRehearsalWindow(req.Title, req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if !req.Status.Valid() {
		return nil, common.NewValidationError(common.FieldError{Field: "status", Message: "must be scheduled, confirmed or cancelled"})
	}

	rehearsal, err := s.rehearsalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rehearsal.VenueID = req.VenueID
	rehearsal.Title = req.Title
	rehearsal.StartsAt = req.StartsAt
	rehearsal.EndsAt = req.EndsAt
	rehearsal.Notes = req.Notes
	rehearsal.Status = req.Status

	if err := s.rehearsalRepo.Update(ctx, rehearsal); err != nil {
		return nil, fmt.Errorf("failed to update rehearsal: %w", err)
	}

	event := realtime.EventRehearsalUpdated
	if rehearsal.Status == model.RehearsalCancelled {
		event = realtime.EventRehearsalCancelled
	}
	s.publish(ctx, rehearsal.BandID, event, rehearsal)
	return rehearsal, nil
}

func (s *RehearsalService) DeleteRehearsal(ctx context.Context, id string) error {
	rehearsal, err := s.rehearsalRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rehearsalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete rehearsal: %w", err)
	}
	s.publish(ctx, rehearsal.BandID, realtime.EventRehearsalCancelled, rehearsal)
	return nil
}

// publish is best-effort; a dropped event never fails the write that caused
// it.
func (s *RehearsalService) publish(ctx context.Context, bandID, eventType string, rehearsal *model.Rehearsal) {
	if s.publisher == nil {
		return
	}
	event := realtime.Event{Type: eventType, BandID: bandID, Data: rehearsal}
	if err := s.publisher.PublishBandEvent(ctx, bandID, event); err != nil {
		s.logger.Warn().Err(err).Str("band_id", bandID).Str("event", eventType).Msg("failed to publish band event")
	}
}
