// Package queue carries booking change events over RabbitMQ.
package queue

import (
	"time"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// BookingEventsQueue is the durable queue that receives every booking change.
const BookingEventsQueue = "booking.events"

// Action names the kind of change a BookingEvent reports.
type Action string

const (
	ActionCreated   Action = "created"
	ActionConfirmed Action = "confirmed"
	ActionCancelled Action = "cancelled"
	ActionDeleted   Action = "deleted"
)

// BookingEvent is published after a booking is created, changes status or is
// deleted.  It carries enough to write an audit line without reading the
// database.
type BookingEvent struct {
	BookingID  string `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	Action     Action `json:"action"`
	Status     string `json:"status"`
	EventType  string `json:"event_type"`
	EventDate  string `json:"event_date"`
	OccurredAt string `json:"occurred_at"`
}

// NewBookingEvent describes action applied to b, stamped with the current
// time.
func NewBookingEvent(action Action, b model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		Action:     action,
		Status:     string(b.Status),
		EventType:  b.EventType,
		EventDate:  b.EventDate,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
