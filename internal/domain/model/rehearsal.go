package model

import (
	"time"
)

type RehearsalStatus string

const (
	RehearsalScheduled RehearsalStatus = "scheduled"
	RehearsalConfirmed RehearsalStatus = "confirmed"
	RehearsalCancelled RehearsalStatus = "cancelled"
)

func (s RehearsalStatus) Valid() bool {
	return s == RehearsalScheduled || s == RehearsalConfirmed || s == RehearsalCancelled
}

type Rehearsal struct {
	ID          string          `json:"id"`
	BandID      string          `json:"bandId"`
	VenueID     *string         `json:"venueId,omitempty"`
	Title       string          `json:"title"`
	StartsAt    time.Time       `json:"startsAt"`
	EndsAt      time.Time       `json:"endsAt"`
	Notes       *string         `json:"notes,omitempty"`
	Status      RehearsalStatus `json:"status"`
	CreatedByID string          `json:"createdById"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
