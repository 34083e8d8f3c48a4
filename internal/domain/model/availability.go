package model

import (
	"time"
)

type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiWeekly RecurrenceType = "bi-weekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

func (r RecurrenceType) Valid() bool {
	return r == RecurrenceWeekly || r == RecurrenceBiWeekly || r == RecurrenceMonthly
}

// UserAvailability is a recurring weekly time window. Times are "HH:MM"
// strings in the user's own timezone; the day of week runs Sunday=0.
type UserAvailability struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	DayOfWeek      int            `json:"dayOfWeek"`
	StartTime      string         `json:"startTime"`
	EndTime        string         `json:"endTime"`
	RecurrenceType RecurrenceType `json:"recurrenceType"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// SpecialAvailability is a date-specific override of the recurring schedule.
type SpecialAvailability struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"isAvailable"`
	StartTime   *string   `json:"startTime,omitempty"`
	EndTime     *string   `json:"endTime,omitempty"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
