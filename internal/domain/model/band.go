package model

import (
	"time"
)

type BandRole string

const (
	RoleMember BandRole = "member"
	RoleAdmin  BandRole = "admin"
	RoleLeader BandRole = "leader"
)

// IsAdmin reports whether the role carries administrative rights over a band.
func (r BandRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleLeader
}

// Valid reports whether the role is one of the known band roles.
func (r BandRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin || r == RoleLeader
}

type Band struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedByID string    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Members []BandMember `json:"members,omitempty"`
}

// BandMember links a user to a band with a role. One row per (band, user).
type BandMember struct {
	ID        string    `json:"id"`
	BandID    string    `json:"bandId"`
	UserID    string    `json:"userId"`
	Role      BandRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	// Denormalized for member listings.
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}
