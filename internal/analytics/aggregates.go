package analytics

import (
	"fmt"
	"sort"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// UnknownDate is the series key for bookings without an event date.
const UnknownDate = "Unknown"

// StatusBreakdown feeds the status pie chart and the dashboard stat cards.
type StatusBreakdown struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

// Breakdown counts bookings per status over the whole input.  Unknown status
// values count as pending, so the three counters always sum to Total.
func Breakdown(bookings []model.Booking) StatusBreakdown {
	out := StatusBreakdown{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status.Normalize() {
		case model.StatusConfirmed:
			out.Confirmed++
		case model.StatusCancelled:
			out.Cancelled++
		default:
			out.Pending++
		}
	}
	return out
}

// TimeSeries is the per-event-date status series behind the line chart.
// Dates is sorted ascending; the three count slices are parallel to it.
type TimeSeries struct {
	Dates     []string `json:"dates"`
	Pending   []int    `json:"pending"`
	Confirmed []int    `json:"confirmed"`
	Cancelled []int    `json:"cancelled"`
	Narrative string   `json:"narrative"`
}

type dayCounts struct{ pending, confirmed, cancelled int }

// Series groups bookings by event date and describes the result.  The
// narrative's increasing/decreasing verdict compares only the first and the
// last date on the axis.
func Series(bookings []model.Booking) TimeSeries {
	byDate := make(map[string]*dayCounts)
	for _, b := range bookings {
		date := b.EventDate
		if date == "" {
			date = UnknownDate
		}
		c, ok := byDate[date]
		if !ok {
			c = &dayCounts{}
			byDate[date] = c
		}
		switch b.Status.Normalize() {
		case model.StatusConfirmed:
			c.confirmed++
		case model.StatusCancelled:
			c.cancelled++
		default:
			c.pending++
		}
	}

	ts := TimeSeries{
		Dates:     make([]string, 0, len(byDate)),
		Pending:   make([]int, 0, len(byDate)),
		Confirmed: make([]int, 0, len(byDate)),
		Cancelled: make([]int, 0, len(byDate)),
	}
	for d := range byDate {
		ts.Dates = append(ts.Dates, d)
	}
	sort.Strings(ts.Dates)
	for _, d := range ts.Dates {
		c := byDate[d]
		ts.Pending = append(ts.Pending, c.pending)
		ts.Confirmed = append(ts.Confirmed, c.confirmed)
		ts.Cancelled = append(ts.Cancelled, c.cancelled)
	}
	ts.Narrative = narrate(ts)
	return ts
}

func narrate(ts TimeSeries) string {
	if len(ts.Dates) == 0 {
		return "No booking data available."
	}
	peakIdx := 0
	for i, n := range ts.Confirmed {
		if n > ts.Confirmed[peakIdx] {
			peakIdx = i
		}
	}
	trend := "decreasing"
	if ts.Confirmed[len(ts.Confirmed)-1] > ts.Confirmed[0] {
		trend = "increasing"
	}
	return fmt.Sprintf("This chart shows the number of bookings by status (pending, confirmed, cancelled) for each event date.\n"+
		"The highest number of confirmed bookings on a single day is %d (on %s). "+
		"Pending bookings peak at %d, and cancelled at %d. "+
		"Overall, confirmed bookings are %s over time.",
		ts.Confirmed[peakIdx], ts.Dates[peakIdx], maxOf(ts.Pending), maxOf(ts.Cancelled), trend)
}

func maxOf(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
