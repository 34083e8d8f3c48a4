package model

import (
	"time"
)

type Venue struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Capacity     *int      `json:"capacity,omitempty"`
	HourlyRate   *float64  `json:"hourlyRate,omitempty"`
	ContactName  *string   `json:"contactName,omitempty"`
	ContactPhone *string   `json:"contactPhone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
