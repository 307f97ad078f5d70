package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// BookingRepo stores booking requests.  IDs are UUIDs generated here;
// created_at is assigned by the database and read back after insert.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, name, email, phone, company, event_type, event_date, event_time,
	duration, attendees, location, description, budget, status, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (model.Booking, error) {
	var (
		b                                             model.Booking
		status                                        string
		phone, eventTime, duration, attendees, budget sql.NullString
	)
	err := s.Scan(&b.ID, &b.UserID, &b.Name, &b.Email, &phone, &b.Company, &b.EventType, &b.EventDate,
		&eventTime, &duration, &attendees, &b.Location, &b.Description, &budget, &status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = model.BookingStatus(status)
	b.Phone = nullable(phone)
	b.EventTime = nullable(eventTime)
	b.Duration = nullable(duration)
	b.Attendees = nullable(attendees)
	b.Budget = nullable(budget)
	return b, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// Create inserts b with a fresh ID and pending status and returns the stored
// row.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (model.Booking, error) {
	b.ID = uuid.NewString()
	b.Status = model.StatusPending
	const q = `INSERT INTO bookings (id, user_id, name, email, phone, company, event_type, event_date,
		event_time, duration, attendees, location, description, budget, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.UserID, b.Name, b.Email, b.Phone, b.Company, b.EventType,
		b.EventDate, b.EventTime, b.Duration, b.Attendees, b.Location, b.Description, b.Budget, string(b.Status))
	if err != nil {
		return model.Booking{}, err
	}
	return r.GetByID(ctx, b.ID)
}

// GetByID returns ErrNotFound for unknown ids.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC, id")
}

// ListByStatus returns the bookings in one status, newest first.
func (r *BookingRepo) ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE status = ? ORDER BY created_at DESC, id", string(status))
}

// ListByUser returns the bookings created by userID, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id", userID)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking from one status to another.  The update only
// applies while the row still holds from; otherwise ErrStale is returned, or
// ErrNotFound if the row is gone.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ? AND status = ?", string(to), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM bookings WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrStale
}

// Delete removes a booking permanently.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
