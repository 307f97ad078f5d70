package service

import (
	"context"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
	"github.com/iliyamo/speaker-booking-desk/internal/queue"
	"github.com/iliyamo/speaker-booking-desk/internal/snapshot"
)

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) Create(ctx context.Context, b model.Booking) (model.Booking, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(model.Booking), args.Error(1)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id string) (model.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Booking), args.Error(1)
}

func (m *mockBookingStore) ListAll(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockBookingStore) ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockBookingStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockBookingStore) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockBookingStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, ev queue.BookingEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type countingNotifier struct{ n int }

func (c *countingNotifier) Notify() { c.n++ }

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Create(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(model.ContactMessage), args.Error(1)
}

func (m *mockContactStore) List(ctx context.Context) ([]model.ContactMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

type staticSnapshot struct {
	snap snapshot.Snapshot
	err  error
}

func (s staticSnapshot) Current(context.Context) (snapshot.Snapshot, error) { return s.snap, s.err }

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

var (
	admin = model.Principal{UserID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
	user  = model.Principal{UserID: 7, Email: "ann@example.com", Role: model.RoleUser}
	other = model.Principal{UserID: 8, Email: "bob@example.com", Role: model.RoleUser}
)

func eventWithAction(a queue.Action) any {
	return mock.MatchedBy(func(ev queue.BookingEvent) bool { return ev.Action == a })
}
