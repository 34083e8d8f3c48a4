package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AvailabilityService owns both recurring windows and date-specific
// overrides. Every mutation is scoped to the owning user; touching another
// user's rows is a forbidden error, not a not-found.
type AvailabilityService struct {
	availabilityRepo repository.AvailabilityRepository
}

func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{availabilityRepo: availabilityRepo}
}

type RecurringAvailabilityRequest struct {
	DayOfWeek      int                  `json:"dayOfWeek"`
	StartTime      string               `json:"startTime"`
	EndTime        string               `json:"endTime"`
	RecurrenceType model.RecurrenceType `json:"recurrenceType"`
	IsActive       *bool                `json:"isActive,omitempty"`
}

type SpecialAvailabilityRequest struct {
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"isAvailable"`
	StartTime   *string   `json:"startTime,omitempty"`
	EndTime     *string   `json:"endTime,omitempty"`
	Note        *string   `json:"note,omitempty"`
}

func (r *RecurringAvailabilityRequest) validate() error {
	var fields []common.FieldError
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		fields = append(fields, common.FieldError{Field: "dayOfWeek", Message: "must be between 0 (Sunday) and 6 (Saturday)"})
	}
	if !timeOfDayPattern.MatchString(r.StartTime) {
		fields = append(fields, common.FieldError{Field: "startTime", Message: "must be HH:MM"})
	}
	if !timeOfDayPattern.MatchString(r.EndTime) {
		fields = append(fields, common.FieldError{Field: "endTime", Message: "must be HH:MM"})
	} else if timeOfDayPattern.MatchString(r.StartTime) && r.EndTime <= r.StartTime {
		fields = append(fields, common.FieldError{Field: "endTime", Message: "must be after startTime"})
	}
	if !r.RecurrenceType.Valid() {
		fields = append(fields, common.FieldError{Field: "recurrenceType", Message: "must be weekly, bi-weekly or monthly"})
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

func (r *SpecialAvailabilityRequest) validate() error {
	var fields []common.FieldError
	if r.Date.IsZero() {
		fields = append(fields, common.FieldError{Field: "date", Message: "is required"})
	}
	if r.StartTime != nil && !timeOfDayPattern.MatchString(*r.StartTime) {
		fields = append(fields, common.FieldError{Field: "startTime", Message: "must be HH:MM"})
	}
	if r.EndTime != nil && !timeOfDayPattern.MatchString(*r.EndTime) {
		fields = append(fields, common.FieldError{Field: "endTime", Message: "must be HH:MM"})
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

func (s *AvailabilityService) CreateRecurring(ctx context.Context, userID string, req RecurringAvailabilityRequest) (*model.UserAvailability, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	slot := &model.UserAvailability{
		ID:             uuid.NewString(),
		UserID:         userID,
		DayOfWeek:      req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RecurrenceType: req.RecurrenceType,
		IsActive:       active,
	}
	if err := s.availabilityRepo.CreateRecurring(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create availability: %w", err)
	}
	return slot, nil
}

func (s *AvailabilityService) ListRecurring(ctx context.Context, userID string) ([]model.UserAvailability, error) {
	return s.availabilityRepo.ListRecurringForUser(ctx, userID)
}

func (s *AvailabilityService) UpdateRecurring(ctx context.Context, userID, id string, req RecurringAvailabilityRequest) (*model.UserAvailability, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	slot, err := s.availabilityRepo.FindRecurringByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.UserID != userID {
		return nil, common.ErrForbidden
	}
	slot.DayOfWeek = req.DayOfWeek
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.RecurrenceType = req.RecurrenceType
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	if err := s.availabilityRepo.UpdateRecurring(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	return slot, nil
}

func (s *AvailabilityService) DeleteRecurring(ctx context.Context, userID, id string) error {
	slot, err := s.availabilityRepo.FindRecurringByID(ctx, id)
	if err != nil {
		return err
	}
	if slot.UserID != userID {
		return common.ErrForbidden
	}
	return s.availabilityRepo.DeleteRecurring(ctx, id)
}

func (s *AvailabilityService) CreateSpecial(ctx context.Context, userID string, req SpecialAvailabilityRequest) (*model.SpecialAvailability, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	override := &model.SpecialAvailability{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        req.Date,
		IsAvailable: req.IsAvailable,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Note:        req.Note,
	}
	if err := s.availabilityRepo.CreateSpecial(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to create special availability: %w", err)
	}
	return override, nil
}

func (s *AvailabilityService) ListSpecial(ctx context.Context, userID string) ([]model.SpecialAvailability, error) {
	return s.availabilityRepo.ListSpecialForUser(ctx, userID)
}

func (s *AvailabilityService) UpdateSpecial(ctx context.Context, userID, id string, req SpecialAvailabilityRequest) (*model.SpecialAvailability, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	override, err := s.availabilityRepo.FindSpecialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if override.UserID != userID {
		return nil, common.ErrForbidden
	}
	override.Date = req.Date
	override.IsAvailable = req.IsAvailable
	override.StartTime = req.StartTime
	override.EndTime = req.EndTime
	override.Note = req.Note
	if err := s.availabilityRepo.UpdateSpecial(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to update special availability: %w", err)
	}
	return override, nil
}

func (s *AvailabilityService) DeleteSpecial(ctx context.Context, userID, id string) error {
	override, err := s.availabilityRepo.FindSpecialByID(ctx, id)
	if err != nil {
		return err
	}
	if override.UserID != userID {
		return common.ErrForbidden
	}
	return s.availabilityRepo.DeleteSpecial(ctx, id)
}
