package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/realtime"
)

type memRehearsalRepo struct {
	rehearsals map[string]*model.Rehearsal
}

func newMemRehearsalRepo() *memRehearsalRepo {
	return &memRehearsalRepo{rehearsals: make(map[string]*model.Rehearsal)}
}

func (r *memRehearsalRepo) Create(ctx context.Context, reh *model.Rehearsal) error {
	cp := *reh
	r.rehearsals[reh.ID] = &cp
	return nil
}

func (r *memRehearsalRepo) FindByID(ctx context.Context, id string) (*model.Rehearsal, error) {
	reh, ok := r.rehearsals[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *reh
	return &cp, nil
}

func (r *memRehearsalRepo) ListByBand(ctx context.Context, bandID string) ([]model.Rehearsal, error) {
	out := []model.Rehearsal{}
	for _, reh := range r.rehearsals {
		if reh.BandID == bandID {
			out = append(out, *reh)
		}
	}
	return out, nil
}

func (r *memRehearsalRepo) Update(ctx context.Context, reh *model.Rehearsal) error {
	if _, ok := r.rehearsals[reh.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *reh
	r.rehearsals[reh.ID] = &cp
	return nil
}

func (r *memRehearsalRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.rehearsals[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rehearsals, id)
	return nil
}

type memVenueRepo struct {
	venues map[string]*model.Venue
}

func newMemVenueRepo() *memVenueRepo {
	return &memVenueRepo{venues: make(map[string]*model.Venue)}
}

func (r *memVenueRepo) Create(ctx context.Context, v *model.Venue) error {
	cp := *v
	r.venues[v.ID] = &cp
	return nil
}

func (r *memVenueRepo) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	out := []model.Venue{}
	for _, v := range r.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVenueRepo) Update(ctx context.Context, v *model.Venue) error {
	if _, ok := r.venues[v.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *v
	r.venues[v.ID] = &cp
	return nil
}

func (r *memVenueRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.venues[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.venues, id)
	return nil
}

type recordingPublisher struct {
	events []realtime.Event
}

func (p *recordingPublisher) PublishBandEvent(ctx context.Context, bandID string, event realtime.Event) error {
	p.events = append(p.events, event)
	return nil
}

func newTestRehearsalService() (*RehearsalService, *memRehearsalRepo, *memVenueRepo, *recordingPublisher) {
	rehearsalRepo := newMemRehearsalRepo()
	venueRepo := newMemVenueRepo()
	publisher := &recordingPublisher{}
	svc := NewRehearsalService(rehearsalRepo, venueRepo, publisher, zerolog.Nop())
	return svc, rehearsalRepo, venueRepo, publisher
}

func validCreateRehearsal() CreateRehearsalRequest {
	start := time.Date(2026, 9, 3, 19, 0, 0, 0, time.UTC)
	return CreateRehearsalRequest{
		BandID:   "band-1",
		Title:    "Weekly run-through",
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
	}
}

func TestCreateRehearsalPublishesEvent(t *testing.T) {
	svc, repo, _, publisher := newTestRehearsalService()

	rehearsal, err := svc.CreateRehearsal(t.Context(), "user-1", validCreateRehearsal())
	require.NoError(t, err)
	assert.Equal(t, model.RehearsalScheduled, rehearsal.Status)
	assert.Len(t, repo.rehearsals, 1)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, realtime.EventRehearsalScheduled, publisher.events[0].Type)
	assert.Equal(t, "band-1", publisher.events[0].BandID)
}

func TestCreateRehearsalUnknownVenue(t *testing.T) {
	svc, repo, _, _ := newTestRehearsalService()

	req := validCreateRehearsal()
	venueID := "missing-venue"
	req.VenueID = &venueID

	_, err := svc.CreateRehearsal(t.Context(), "user-1", req)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, repo.rehearsals)
}

func TestCreateRehearsalInvalidWindow(t *testing.T) {
	svc, _, _, publisher := newTestRehearsalService()

	req := validCreateRehearsal()
	req.EndsAt = req.StartsAt.Add(-time.Hour)

	_, err := svc.CreateRehearsal(t.Context(), "user-1", req)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, publisher.events)
}

func TestCancelRehearsalPublishesCancelled(t *testing.T) {
	svc, _, _, publisher := newTestRehearsalService()

	rehearsal, err := svc.CreateRehearsal(t.Context(), "user-1", validCreateRehearsal())
	require.NoError(t, err)

	_, err = svc.UpdateRehearsal(t.Context(), rehearsal.ID, UpdateRehearsalRequest{
		Title:    rehearsal.Title,
		StartsAt: rehearsal.StartsAt,
		EndsAt:   rehearsal.EndsAt,
		Status:   model.RehearsalCancelled,
	})
	require.NoError(t, err)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, realtime.EventRehearsalCancelled, publisher.events[1].Type)
}

func TestDeleteRehearsal(t *testing.T) {
	svc, repo, _, publisher := newTestRehearsalService()

	rehearsal, err := svc.CreateRehearsal(t.Context(), "user-1", validCreateRehearsal())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRehearsal(t.Context(), rehearsal.ID))
	assert.Empty(t, repo.rehearsals)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, realtime.EventRehearsalCancelled, publisher.events[1].Type)
}
