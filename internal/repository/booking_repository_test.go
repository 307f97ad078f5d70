package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

var bookingCols = []string{"id", "user_id", "name", "email", "phone", "company", "event_type", "event_date",
	"event_time", "duration", "attendees", "location", "description", "budget", "status", "created_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestBookingRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(sqlmock.AnyArg(), uint64(7), "Ann", "ann@example.com", nil, "Acme", "Keynote", "2024-04-01",
			"09:30", nil, nil, "Cape Town", "Kickoff", nil, "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = ?")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow("b-1", 7, "Ann", "ann@example.com", nil, "Acme", "Keynote",
			"2024-04-01", "09:30", nil, nil, "Cape Town", "Kickoff", nil, "pending", created))

	b, err := repo.Create(context.Background(), model.Booking{
		UserID:      7,
		Name:        "Ann",
		Email:       "ann@example.com",
		Company:     "Acme",
		EventType:   "Keynote",
		EventDate:   "2024-04-01",
		EventTime:   model.Optional("09:30"),
		Location:    "Cape Town",
		Description: "Kickoff",
		Status:      model.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, created, b.CreatedAt)
	require.NotNil(t, b.EventTime)
	assert.Equal(t, "09:30", *b.EventTime)
	assert.Nil(t, b.Phone)
	assert.Nil(t, b.Budget)
}

func TestBookingRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := NewBookingRepo(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepo_ListByStatus(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = ? ORDER BY created_at DESC")).
		WithArgs("cancelled").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow("b-2", 3, "Bob", "bob@example.com", "555", "", "Workshop", "2024-05-01", nil, "2h", "40",
				"Durban", "", "R5000", "cancelled", now))

	out, err := NewBookingRepo(db).ListByStatus(context.Background(), model.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.StatusCancelled, out[0].Status)
	assert.Equal(t, "555", model.Deref(out[0].Phone))
	assert.Equal(t, "R5000", model.Deref(out[0].Budget))
}

func TestBookingRepo_ListByUser_Empty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = ?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	out, err := NewBookingRepo(db).ListByUser(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestBookingRepo_UpdateStatus(t *testing.T) {
	const update = "UPDATE bookings SET status = ? WHERE id = ? AND status = ?"
	const exists = "SELECT 1 FROM bookings WHERE id = ?"

	t.Run("applied", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(update)).
			WithArgs("confirmed", "b-1", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, NewBookingRepo(db).UpdateStatus(context.Background(), "b-1", model.StatusPending, model.StatusConfirmed))
	})

	t.Run("stale", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(update)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(exists)).WithArgs("b-1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		err := NewBookingRepo(db).UpdateStatus(context.Background(), "b-1", model.StatusPending, model.StatusCancelled)
		assert.ErrorIs(t, err, ErrStale)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(update)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(exists)).WithArgs("b-1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))
		err := NewBookingRepo(db).UpdateStatus(context.Background(), "b-1", model.StatusPending, model.StatusCancelled)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBookingRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = ?")).
		WithArgs("b-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = ?")).
		WithArgs("b-1").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepo(db)
	assert.NoError(t, repo.Delete(context.Background(), "b-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "b-1"), ErrNotFound)
}
