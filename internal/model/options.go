package model

import (
	"fmt"
	"time"
)

// TimeSlot is one selectable event start time.
type TimeSlot struct {
	Value string `json:"value"` // 24h, e.g. "13:30"
	Label string `json:"label"` // 12h, e.g. "1:30 PM"
}

// BookingOptions lists the choices offered by the booking form.
type BookingOptions struct {
	EventTypes     []string   `json:"eventTypes"`
	Durations      []string   `json:"durations"`
	AttendeeRanges []string   `json:"attendeeRanges"`
	BudgetRanges   []string   `json:"budgetRanges"`
	TimeSlots      []TimeSlot `json:"timeSlots"`
}

// DefaultBookingOptions returns a fresh copy of the form choices.  Time slots
// run every half hour from 06:00 to 22:30.
func DefaultBookingOptions() BookingOptions {
	return BookingOptions{
		EventTypes: []string{
			"Keynote Speaking",
			"Workshop Facilitation",
			"Strategic Consultation",
			"Panel Discussion",
			"Corporate Training",
			"Other",
		},
		Durations: []string{
			"30 minutes", "45 minutes", "1 hour", "1.5 hours", "2 hours", "3 hours",
			"Half day (4 hours)", "Full day (8 hours)", "Multi-day",
		},
		AttendeeRanges: []string{"1-10", "11-25", "26-50", "51-100", "101-250", "251-500", "500+"},
		BudgetRanges: []string{
			"Under R25,000", "R25,000 - R50,000", "R50,000 - R100,000",
			"R100,000 - R250,000", "R250,000+", "Prefer to discuss",
		},
		TimeSlots: timeSlots(6, 22),
	}
}

func timeSlots(fromHour, toHour int) []TimeSlot {
	out := make([]TimeSlot, 0, (toHour-fromHour+1)*2)
	for h := fromHour; h <= toHour; h++ {
		for _, m := range []int{0, 30} {
			t := time.Date(2000, 1, 1, h, m, 0, 0, time.UTC)
			out = append(out, TimeSlot{Value: fmt.Sprintf("%02d:%02d", h, m), Label: t.Format("3:04 PM")})
		}
	}
	return out
}
