package models

import "time"

// Event is an association event open for registration while active and in
// the future. Date partitions events into upcoming and past.
type Event struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Date            time.Time `db:"date" json:"date"`
	Location        string    `db:"location" json:"location"`
	MaxAttendees    *int      `db:"max_attendees" json:"max_attendees,omitempty"`
	RegistrationFee float64   `db:"registration_fee" json:"registration_fee"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// RegistrationStatus tracks an attendee's state for an event.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationAttended   RegistrationStatus = "attended"
	RegistrationCancelled  RegistrationStatus = "cancelled"
)

// EventRegistration links a user to an event. A unique index on
// (event_id, user_id) enforces at most one registration per pair.
type EventRegistration struct {
	ID           string             `db:"id" json:"id"`
	EventID      string             `db:"event_id" json:"event_id"`
	UserID       string             `db:"user_id" json:"user_id"`
	Status       RegistrationStatus `db:"status" json:"status"`
	RegisteredAt time.Time          `db:"registered_at" json:"registered_at"`
}

// EventCreateRequest is the admin event-creation payload. Date uses the
// HTML datetime-local layout; capacity and fee are optional.
type EventCreateRequest struct {
	Title           string   `json:"title" form:"title" validate:"required"`
	Description     string   `json:"description" form:"description"`
	Date            string   `json:"date" form:"date" validate:"required"`
	Location        string   `json:"location" form:"location"`
	MaxAttendees    *int     `json:"max_attendees" form:"max_attendees" validate:"omitempty,gt=0"`
	RegistrationFee *float64 `json:"registration_fee" form:"registration_fee" validate:"omitempty,gte=0"`
}

// EventDateLayout is the accepted layout for EventCreateRequest.Date.
const EventDateLayout = "2006-01-02T15:04"
