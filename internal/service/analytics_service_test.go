package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/speaker-booking-desk/internal/analytics"
	"github.com/iliyamo/speaker-booking-desk/internal/model"
	"github.com/iliyamo/speaker-booking-desk/internal/repository"
	"github.com/iliyamo/speaker-booking-desk/internal/snapshot"
)

func snapshotOf(bookings ...model.Booking) staticSnapshot {
	return staticSnapshot{snap: snapshot.Snapshot{Bookings: bookings}}
}

func TestAnalytics_Ask(t *testing.T) {
	feed := snapshotOf(
		model.Booking{ID: "a", EventType: "Keynote", Status: model.StatusPending},
		model.Booking{ID: "b", EventType: "Keynote", Status: model.StatusConfirmed},
	)
	svc := NewAnalyticsService(feed, nil)

	r, err := svc.Ask(context.Background(), admin, "  How many bookings are pending? ")
	require.NoError(t, err)
	assert.Equal(t, "How many bookings are pending?", r.Question)
	assert.Equal(t, "There are currently 1 pending bookings.", r.Answer)

	_, err = svc.Ask(context.Background(), admin, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Ask(context.Background(), user, "pending")
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestAnalytics_StatsAndSeries(t *testing.T) {
	feed := snapshotOf(
		model.Booking{EventDate: "2024-01-02", Status: model.StatusConfirmed},
		model.Booking{EventDate: "2024-01-01", Status: model.StatusCancelled},
		model.Booking{EventDate: "2024-01-01", Status: "weird"},
	)
	svc := NewAnalyticsService(feed, nil)

	stats, err := svc.Stats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, analytics.StatusBreakdown{Total: 3, Pending: 1, Confirmed: 1, Cancelled: 1}, stats)

	ts, err := svc.Series(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, ts.Dates)
	assert.Contains(t, ts.Narrative, "increasing")

	qs, err := svc.Questions(admin)
	require.NoError(t, err)
	assert.Len(t, qs, 11)
}

func TestAnalytics_SnapshotError(t *testing.T) {
	svc := NewAnalyticsService(staticSnapshot{err: errors.New("db down")}, nil)
	_, err := svc.Stats(context.Background(), admin)
	assert.Error(t, err)
}

func TestAnalytics_ExportCSV(t *testing.T) {
	bookingSvc, store, _, _ := newBookingService()
	store.On("ListByStatus", context.Background(), model.StatusPending).
		Return([]model.Booking{{ID: "b-1", Name: "Ann", Status: model.StatusPending}}, nil)
	svc := NewAnalyticsService(snapshotOf(), bookingSvc)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), admin, "pending", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "b-1,Ann,"))

	assert.ErrorIs(t, svc.ExportCSV(context.Background(), user, "", &buf), repository.ErrForbidden)
}
