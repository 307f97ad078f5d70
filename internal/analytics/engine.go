// Package analytics answers the dashboard's fixed catalog of booking
// questions and reduces booking snapshots into chart-ready aggregates.
// Everything here is a pure function of its inputs: no I/O, no shared state,
// no error returns.
package analytics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// FallbackAnswer is returned when a question matches none of the rules.
const FallbackAnswer = "Sorry, I can only answer questions about bookings. Try asking about popular event types, booking counts, or details for a specific booking."

// questions is the catalog offered by the dashboard, in display order.
var questions = []string{
	"What is the most popular event type?",
	"How many bookings are pending?",
	"How many bookings are confirmed?",
	"How many bookings are cancelled?",
	"What is the latest booking?",
	"Show me details for a specific booking",
	"Are bookings increasing or decreasing?",
	"Which day has the most bookings?",
	"Which company booked the most?",
	"What is the average time between booking and event?",
	"Which event type has the most cancellations?",
}

// Questions returns a copy of the predefined question catalog.
func Questions() []string {
	out := make([]string, len(questions))
	copy(out, questions)
	return out
}

// rule routes a question to one computation.  triggers are lower-case
// substrings; any one of them selects the rule.
type rule struct {
	name     string
	triggers []string
	answer   func(question string, bookings []model.Booking) string
}

// rules is evaluated top to bottom and the first match wins.  Keep the order:
// "pending"/"confirmed"/"cancelled" shadow every later rule whose question
// happens to contain those words, and "details for" is tested last so that
// e.g. "latest" lookups are not treated as name searches.
var rules = []rule{
	{"popular_event_type", []string{"popular event"}, func(_ string, b []model.Booking) string { return mostPopularEventType(b) }},
	{"count_pending", []string{"pending"}, func(_ string, b []model.Booking) string { return countByStatus(b, model.StatusPending) }},
	{"count_confirmed", []string{"confirmed"}, func(_ string, b []model.Booking) string { return countByStatus(b, model.StatusConfirmed) }},
	{"count_cancelled", []string{"cancelled"}, func(_ string, b []model.Booking) string { return countByStatus(b, model.StatusCancelled) }},
	{"latest_booking", []string{"latest"}, func(_ string, b []model.Booking) string { return latestBooking(b) }},
	{"trend", []string{"increasing", "decreasing", "trend"}, func(_ string, b []model.Booking) string { return trendDirection(b) }},
	{"peak_day", []string{"day has the most bookings"}, func(_ string, b []model.Booking) string { return peakDay(b) }},
	{"top_company", []string{"company booked the most"}, func(_ string, b []model.Booking) string { return topCompany(b) }},
	{"average_lead_time", []string{"average time between booking and event"}, func(_ string, b []model.Booking) string { return averageLeadTime(b) }},
	{"most_cancelled_type", []string{"event type has the most cancellations"}, func(_ string, b []model.Booking) string { return mostCancelledEventType(b) }},
	{"lookup", []string{"details for", "specific booking"}, lookup},
}

// Answer routes question to the first matching rule and evaluates it against
// bookings.  Matching is case-insensitive substring containment.
func Answer(question string, bookings []model.Booking) string {
	if r, ok := match(question); ok {
		return r.answer(question, bookings)
	}
	return FallbackAnswer
}

// Route returns the name of the rule that would answer question, or
// "fallback".
func Route(question string) string {
	if r, ok := match(question); ok {
		return r.name
	}
	return "fallback"
}

func match(question string) (rule, bool) {
	q := strings.ToLower(question)
	for _, r := range rules {
		for _, t := range r.triggers {
			if strings.Contains(q, t) {
				return r, true
			}
		}
	}
	return rule{}, false
}

func mostPopularEventType(bookings []model.Booking) string {
	key, n, ok := topKey(bookings, func(b model.Booking) (string, bool) { return b.EventType, true })
	if !ok {
		return "No bookings found."
	}
	return fmt.Sprintf("The most popular event type is \"%s\" with %d bookings.", key, n)
}

func countByStatus(bookings []model.Booking, status model.BookingStatus) string {
	n := 0
	for _, b := range bookings {
		if b.Status == status {
			n++
		}
	}
	return fmt.Sprintf("There are currently %d %s bookings.", n, status)
}

func latestBooking(bookings []model.Booking) string {
	if len(bookings) == 0 {
		return "No bookings found."
	}
	latest := bookings[0]
	for _, b := range bookings[1:] {
		if b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	return fmt.Sprintf("The latest booking is for \"%s\" by %s on %s.", latest.EventType, latest.Name, latest.EventDate)
}

// trendDirection compares confirmed counts on the earliest and the latest
// event date only.
func trendDirection(bookings []model.Booking) string {
	if len(bookings) < 2 {
		return "Not enough data to determine a trend."
	}
	first, last := bookings[0].EventDate, bookings[0].EventDate
	for _, b := range bookings[1:] {
		if b.EventDate < first {
			first = b.EventDate
		}
		if b.EventDate > last {
			last = b.EventDate
		}
	}
	var confirmedFirst, confirmedLast int
	for _, b := range bookings {
		if b.Status != model.StatusConfirmed {
			continue
		}
		if b.EventDate == first {
			confirmedFirst++
		}
		if b.EventDate == last {
			confirmedLast++
		}
	}
	switch {
	case confirmedLast > confirmedFirst:
		return "Confirmed bookings are trending upward over time."
	case confirmedLast < confirmedFirst:
		return "Confirmed bookings are trending downward over time."
	default:
		return "Confirmed bookings are stable over time."
	}
}

func peakDay(bookings []model.Booking) string {
	key, n, ok := topKey(bookings, func(b model.Booking) (string, bool) { return b.EventDate, true })
	if !ok {
		return "No bookings found."
	}
	return fmt.Sprintf("The day with the most bookings is %s with %d bookings.", key, n)
}

func topCompany(bookings []model.Booking) string {
	key, n, ok := topKey(bookings, func(b model.Booking) (string, bool) { return b.Company, b.Company != "" })
	if !ok {
		return "No company bookings found."
	}
	return fmt.Sprintf("The company with the most bookings is \"%s\" with %d bookings.", key, n)
}

// averageLeadTime skips records whose creation time is unset or whose event
// date does not parse; they are not counted as zero.
func averageLeadTime(bookings []model.Booking) string {
	var sum float64
	n := 0
	for _, b := range bookings {
		if b.CreatedAt.IsZero() {
			continue
		}
		event, ok := b.ParseEventDate()
		if !ok {
			continue
		}
		sum += event.Sub(b.CreatedAt).Hours() / 24
		n++
	}
	if n == 0 {
		return "Not enough data to calculate average time."
	}
	return fmt.Sprintf("The average time between booking and event is %.1f days.", sum/float64(n))
}

func mostCancelledEventType(bookings []model.Booking) string {
	key, n, ok := topKey(bookings, func(b model.Booking) (string, bool) {
		return b.EventType, b.Status == model.StatusCancelled
	})
	if !ok {
		return "No cancellations found."
	}
	return fmt.Sprintf("The event type with the most cancellations is \"%s\" with %d cancellations.", key, n)
}

var lookupFragment = regexp.MustCompile(`(?i)for ([^?]+)`)

func lookup(question string, bookings []model.Booking) string {
	search := ""
	if m := lookupFragment.FindStringSubmatch(question); m != nil {
		search = strings.TrimSpace(m[1])
	}
	if search == "" {
		return "Please specify a name or email for the booking you want details about."
	}
	needle := strings.ToLower(search)
	for _, b := range bookings {
		if strings.Contains(strings.ToLower(b.Name), needle) || strings.Contains(strings.ToLower(b.Email), needle) {
			return fmt.Sprintf("Booking for %s:\nEvent: %s\nDate: %s\nStatus: %s\nLocation: %s\nDescription: %s",
				b.Name, b.EventType, b.EventDate, b.Status, b.Location, b.Description)
		}
	}
	return fmt.Sprintf("No booking found for \"%s\".", search)
}

// topKey groups bookings by the key returned from keyOf (records with
// include=false are skipped) and returns the key with the highest count.
// Ties go to the key seen first in input order.
func topKey(bookings []model.Booking, keyOf func(model.Booking) (key string, include bool)) (string, int, bool) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, b := range bookings {
		k, include := keyOf(b)
		if !include {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	if len(order) == 0 {
		return "", 0, false
	}
	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best, counts[best], true
}
