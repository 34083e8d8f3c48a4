package api

import (
	"context"
	"sync"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/realtime"
)

// In-memory repositories backing the router tests. They mirror the
// Postgres implementations' error contract (ErrNotFound, ErrConflict)
// without a database.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type memBandRepo struct {
	mu      sync.Mutex
	bands   map[string]*model.Band
	members map[string]*model.BandMember // bandID+"/"+userID
}

func newMemBandRepo() *memBandRepo {
	return &memBandRepo{
		bands:   make(map[string]*model.Band),
		members: make(map[string]*model.BandMember),
	}
}

func (r *memBandRepo) CreateBand(ctx context.Context, band *model.Band) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *band
	r.bands[band.ID] = &cp
	return nil
}

func (r *memBandRepo) FindBandByID(ctx context.Context, id string) (*model.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bands[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBandRepo) FindBandBySlug(ctx context.Context, slug string) (*model.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bands {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memBandRepo) ListBandsForUser(ctx context.Context, userID string) ([]model.Band, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Band{}
	for _, m := range r.members {
		if m.UserID == userID {
			if b, ok := r.bands[m.BandID]; ok {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}

func (r *memBandRepo) UpdateBand(ctx context.Context, band *model.Band) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bands[band.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *band
	r.bands[band.ID] = &cp
	return nil
}

func (r *memBandRepo) AddMember(ctx context.Context, member *model.BandMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := member.BandID + "/" + member.UserID
	if _, ok := r.members[key]; ok {
		return common.ErrConflict
	}
	cp := *member
	r.members[key] = &cp
	return nil
}

func (r *memBandRepo) FindMember(ctx context.Context, bandID, userID string) (*model.BandMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[bandID+"/"+userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memBandRepo) ListMembers(ctx context.Context, bandID string) ([]model.BandMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.BandMember{}
	for _, m := range r.members {
		if m.BandID == bandID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memBandRepo) UpdateMemberRole(ctx context.Context, bandID, userID string, role model.BandRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[bandID+"/"+userID]
	if !ok {
		return common.ErrNotFound
	}
	m.Role = role
	return nil
}

func (r *memBandRepo) RemoveMember(ctx context.Context, bandID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := bandID + "/" + userID
	if _, ok := r.members[key]; !ok {
		return common.ErrNotFound
	}
	delete(r.members, key)
	return nil
}

type memVenueRepo struct {
	mu     sync.Mutex
	venues map[string]*model.Venue
}

func newMemVenueRepo() *memVenueRepo {
	return &memVenueRepo{venues: make(map[string]*model.Venue)}
}

func (r *memVenueRepo) Create(ctx context.Context, venue *model.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *venue
	r.venues[venue.ID] = &cp
	return nil
}

func (r *memVenueRepo) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Venue{}
	for _, v := range r.venues {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVenueRepo) Update(ctx context.Context, venue *model.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *venue
	r.venues[venue.ID] = &cp
	return nil
}

func (r *memVenueRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.venues, id)
	return nil
}

type memRehearsalRepo struct {
	mu         sync.Mutex
	rehearsals map[string]*model.Rehearsal
}

func newMemRehearsalRepo() *memRehearsalRepo {
	return &memRehearsalRepo{rehearsals: make(map[string]*model.Rehearsal)}
}

func (r *memRehearsalRepo) Create(ctx context.Context, rehearsal *model.Rehearsal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rehearsal
	r.rehearsals[rehearsal.ID] = &cp
	return nil
}

func (r *memRehearsalRepo) FindByID(ctx context.Context, id string) (*model.Rehearsal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reh, ok := r.rehearsals[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *reh
	return &cp, nil
}

func (r *memRehearsalRepo) ListByBand(ctx context.Context, bandID string) ([]model.Rehearsal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Rehearsal{}
	for _, reh := range r.rehearsals {
		if reh.BandID == bandID {
			out = append(out, *reh)
		}
	}
	return out, nil
}

func (r *memRehearsalRepo) Update(ctx context.Context, rehearsal *model.Rehearsal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rehearsals[rehearsal.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *rehearsal
	r.rehearsals[rehearsal.ID] = &cp
	return nil
}

func (r *memRehearsalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rehearsals[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rehearsals, id)
	return nil
}

type memAvailabilityRepo struct {
	mu        sync.Mutex
	recurring map[string]*model.UserAvailability
	special   map[string]*model.SpecialAvailability
}

func newMemAvailabilityRepo() *memAvailabilityRepo {
	return &memAvailabilityRepo{
		recurring: make(map[string]*model.UserAvailability),
		special:   make(map[string]*model.SpecialAvailability),
	}
}

func (r *memAvailabilityRepo) CreateRecurring(ctx context.Context, a *model.UserAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.recurring[a.ID] = &cp
	return nil
}

func (r *memAvailabilityRepo) FindRecurringByID(ctx context.Context, id string) (*model.UserAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.recurring[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAvailabilityRepo) ListRecurringForUser(ctx context.Context, userID string) ([]model.UserAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.UserAvailability{}
	for _, a := range r.recurring {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) UpdateRecurring(ctx context.Context, a *model.UserAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recurring[a.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *a
	r.recurring[a.ID] = &cp
	return nil
}

func (r *memAvailabilityRepo) DeleteRecurring(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recurring[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.recurring, id)
	return nil
}

func (r *memAvailabilityRepo) CreateSpecial(ctx context.Context, s *model.SpecialAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.special[s.ID] = &cp
	return nil
}

func (r *memAvailabilityRepo) FindSpecialByID(ctx context.Context, id string) (*model.SpecialAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.special[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memAvailabilityRepo) ListSpecialForUser(ctx context.Context, userID string) ([]model.SpecialAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.SpecialAvailability{}
	for _, s := range r.special {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) UpdateSpecial(ctx context.Context, s *model.SpecialAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.special[s.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *s
	r.special[s.ID] = &cp
	return nil
}

func (r *memAvailabilityRepo) DeleteSpecial(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.special[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.special, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) PublishBandEvent(ctx context.Context, bandID string, event realtime.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
