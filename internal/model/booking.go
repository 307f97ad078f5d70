package model

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// EventDateLayout is the calendar-date layout of Booking.EventDate.
const EventDateLayout = "2006-01-02"

// Valid reports whether s is one of the three known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Normalize maps unknown stored values to pending so that per-status counts
// always add up to the number of records counted.
func (s BookingStatus) Normalize() BookingStatus {
	if s.Valid() {
		return s
	}
	return StatusPending
}

// CanTransitionTo reports whether an administrator may move a booking from s
// to next.  Only pending bookings can change; confirmed and cancelled are
// terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusConfirmed || next == StatusCancelled
}

// ParseStatusFilter parses an admin list filter.  The empty string and "all"
// yield an empty status, meaning no filtering.
func ParseStatusFilter(raw string) (BookingStatus, bool) {
	v := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" || v == "all" {
		return "", true
	}
	return v, v.Valid()
}

// Booking mirrors a row of the `bookings` table.  Optional fields are nil
// when the submitter did not supply them; they are never stored as empty
// strings.
//
// Fields:
//
//	ID          – opaque UUID assigned on creation.
//	UserID      – creator; never changes.
//	EventDate   – ISO calendar date (YYYY-MM-DD) of the event.
//	Status      – pending, confirmed or cancelled.
//	CreatedAt   – assigned by the database at insert time (UTC).
type Booking struct {
	ID          string        `json:"id"`                  // bookings.id
	UserID      uint64        `json:"userId"`              // bookings.user_id
	Name        string        `json:"name"`                // bookings.name
	Email       string        `json:"email"`               // bookings.email
	Phone       *string       `json:"phone,omitempty"`     // bookings.phone (nullable)
	Company     string        `json:"company"`             // bookings.company
	EventType   string        `json:"eventType"`           // bookings.event_type
	EventDate   string        `json:"eventDate"`           // bookings.event_date
	EventTime   *string       `json:"eventTime,omitempty"` // bookings.event_time (nullable)
	Duration    *string       `json:"duration,omitempty"`  // bookings.duration (nullable)
	Attendees   *string       `json:"attendees,omitempty"` // bookings.attendees (nullable)
	Location    string        `json:"location"`            // bookings.location
	Description string        `json:"description"`         // bookings.description
	Budget      *string       `json:"budget,omitempty"`    // bookings.budget (nullable)
	Status      BookingStatus `json:"status"`              // bookings.status
	CreatedAt   time.Time     `json:"createdAt"`           // bookings.created_at
}

// ParseEventDate interprets EventDate as midnight UTC of that day.  Full
// RFC 3339 timestamps are accepted as well.
func (b Booking) ParseEventDate() (time.Time, bool) {
	raw := strings.TrimSpace(b.EventDate)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(EventDateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// Optional returns nil for blank input and a pointer to the trimmed value
// otherwise.
func Optional(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}

// Deref returns the pointed-to value or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
