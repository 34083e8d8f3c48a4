package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
)

type BandService struct {
	bandRepo repository.BandRepository
	userRepo repository.UserRepository
}

func NewBandService(bandRepo repository.BandRepository, userRepo repository.UserRepository) *BandService {
	return &BandService{bandRepo: bandRepo, userRepo: userRepo}
}

type CreateBandRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateBandRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type AddMemberRequest struct {
	UserID string         `json:"userId"`
	Role   model.BandRole `json:"role"`
}

type UpdateMemberRoleRequest struct {
	Role model.BandRole `json:"role"`
}

// CreateBand creates a band and enrolls the creator as its leader.
func (s *BandService) CreateBand(ctx context.Context, creatorID string, req CreateBandRequest) (*model.Band, error) {
	if req.Name == "" {
		return nil, common.NewValidationError(common.FieldError{Field: "name", Message: "is required"})
	}

	band := &model.Band{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		CreatedByID: creatorID,
	}
	if err := s.bandRepo.CreateBand(ctx, band); err != nil {
		return nil, fmt.Errorf("failed to create band: %w", err)
	}

	leader := &model.BandMember{
		ID:     uuid.NewString(),
		BandID: band.ID,
		UserID: creatorID,
		Role:   model.RoleLeader,
	}
	if err := s.bandRepo.AddMember(ctx, leader); err != nil {
		return nil, fmt.Errorf("failed to enroll band creator: %w", err)
	}
	return band, nil
}

func (s *BandService) GetBand(ctx context.Context, bandID string) (*model.Band, error) {
	band, err := s.bandRepo.FindBandByID(ctx, bandID)
	if err != nil {
		return nil, err
	}
	members, err := s.bandRepo.ListMembers(ctx, bandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list band members: %w", err)
	}
	band.Members = members
	return band, nil
}

func (s *BandService) ListBandsForUser(ctx context.Context, userID string) ([]model.Band, error) {
	return s.bandRepo.ListBandsForUser(ctx, userID)
}

func (s *BandService) UpdateBand(ctx context.Context, bandID string, req UpdateBandRequest) (*model.Band, error) {
	if req.Name == "" {
		return nil, common.NewValidationError(common.FieldError{Field: "name", Message: "is required"})
	}
	band, err := s.bandRepo.FindBandByID(ctx, bandID)
	if err != nil {
		return nil, err
	}
	band.Name = req.Name
	band.Description = req.Description
	if err := s.bandRepo.UpdateBand(ctx, band); err != nil {
		return nil, fmt.Errorf("failed to update band: %w", err)
	}
	return band, nil
}

// AddMember adds a user to a band. Defaults to the member role when none is
// given.
func (s *BandService) AddMember(ctx context.Context, bandID string, req AddMemberRequest) (*model.BandMember, error) {
	if req.UserID == "" {
		return nil, common.NewValidationError(common.FieldError{Field: "userId", Message: "is required"})
	}
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !role.Valid() {
		return nil, common.NewValidationError(common.FieldError{Field: "role", Message: "must be member, admin or leader"})
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	member := &model.BandMember{
		ID:     uuid.NewString(),
		BandID: bandID,
		UserID: req.UserID,
		Role:   role,
	}
	if err := s.bandRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *BandService) UpdateMemberRole(ctx context.Context, bandID, userID string, req UpdateMemberRoleRequest) error {
	if !req.Role.Valid() {
		return common.NewValidationError(common.FieldError{Field: "role", Message: "must be member, admin or leader"})
	}
	return s.bandRepo.UpdateMemberRole(ctx, bandID, userID, req.Role)
}

func (s *BandService) RemoveMember(ctx context.Context, bandID, userID string) error {
	return s.bandRepo.RemoveMember(ctx, bandID, userID)
}
