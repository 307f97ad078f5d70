// Package export renders bookings for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// Header is the first row written by WriteBookingsCSV.
var Header = []string{
	"id", "name", "email", "phone", "company", "eventType", "eventDate", "eventTime",
	"duration", "attendees", "location", "description", "budget", "status", "createdAt", "userId",
}

// WriteBookingsCSV writes a header row and one row per booking.  Absent
// optional fields are written as empty cells.
func WriteBookingsCSV(w io.Writer, bookings []model.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, b := range bookings {
		created := ""
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			b.ID,
			b.Name,
			b.Email,
			model.Deref(b.Phone),
			b.Company,
			b.EventType,
			b.EventDate,
			model.Deref(b.EventTime),
			model.Deref(b.Duration),
			model.Deref(b.Attendees),
			b.Location,
			b.Description,
			model.Deref(b.Budget),
			string(b.Status),
			created,
			strconv.FormatUint(b.UserID, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename is the attachment name for an export taken at t.
func Filename(t time.Time) string {
	return "bookings-" + t.UTC().Format("20060102-150405") + ".csv"
}
