package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
	"github.com/iliyamo/speaker-booking-desk/internal/queue"
	"github.com/iliyamo/speaker-booking-desk/internal/repository"
)

// BookingStore is the persistence the booking workflow needs.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) (model.Booking, error)
	GetByID(ctx context.Context, id string) (model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher delivers booking change events to other instances.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// Notifier is told about every local change.
type Notifier interface {
	Notify()
}

const publishTimeout = 3 * time.Second

// BookingInput is the booking request form.  Email is accepted for
// compatibility but ignored: the booking is always filed under the caller's
// account address.
type BookingInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	EventType   string `json:"eventType"`
	EventDate   string `json:"eventDate"`
	EventTime   string `json:"eventTime"`
	Duration    string `json:"duration"`
	Attendees   string `json:"attendees"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
}

type BookingService struct {
	store  BookingStore
	events EventPublisher
	feed   Notifier
	log    *log.Logger
}

func NewBookingService(store BookingStore, events EventPublisher, feed Notifier, logger *log.Logger) *BookingService {
	return &BookingService{store: store, events: events, feed: feed, log: logger}
}

// Submit files a new pending booking for p.
func (s *BookingService) Submit(ctx context.Context, p model.Principal, in BookingInput) (model.Booking, error) {
	if err := authorize(p, model.CapabilitySubmitBooking); err != nil {
		return model.Booking{}, err
	}
	b, err := bookingFromInput(p, in)
	if err != nil {
		return model.Booking{}, err
	}
	created, err := s.store.Create(ctx, b)
	if err != nil {
		return model.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	s.changed(ctx, queue.ActionCreated, created)
	return created, nil
}

func bookingFromInput(p model.Principal, in BookingInput) (model.Booking, error) {
	b := model.Booking{
		UserID:      p.UserID,
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(p.Email),
		Phone:       model.Optional(in.Phone),
		Company:     strings.TrimSpace(in.Company),
		EventType:   strings.TrimSpace(in.EventType),
		EventDate:   strings.TrimSpace(in.EventDate),
		EventTime:   model.Optional(in.EventTime),
		Duration:    model.Optional(in.Duration),
		Attendees:   model.Optional(in.Attendees),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Budget:      model.Optional(in.Budget),
		Status:      model.StatusPending,
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", b.Name},
		{"company", b.Company},
		{"eventType", b.EventType},
		{"eventDate", b.EventDate},
		{"location", b.Location},
		{"description", b.Description},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.Booking{}, invalid("please fill in all required fields: %s", strings.Join(missing, ", "))
	}
	if b.Email == "" {
		return model.Booking{}, invalid("your account has no email address")
	}
	if _, err := time.Parse(model.EventDateLayout, b.EventDate); err != nil {
		return model.Booking{}, invalid("eventDate must be a date in YYYY-MM-DD format")
	}
	return b, nil
}

// ListMine returns the caller's own bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, p model.Principal) ([]model.Booking, error) {
	if p.UserID == 0 {
		return nil, repository.ErrForbidden
	}
	return s.store.ListByUser(ctx, p.UserID)
}

// List returns all bookings or those matching the status filter
// ("", "all", "pending", "confirmed", "cancelled").
func (s *BookingService) List(ctx context.Context, p model.Principal, filter string) ([]model.Booking, error) {
	if err := authorize(p, model.CapabilityManageBookings); err != nil {
		return nil, err
	}
	status, ok := model.ParseStatusFilter(filter)
	if !ok {
		return nil, invalid("unknown status filter %q", filter)
	}
	if status == "" {
		return s.store.ListAll(ctx)
	}
	return s.store.ListByStatus(ctx, status)
}

// Get returns one booking.  Non-admins may only read their own.
func (s *BookingService) Get(ctx context.Context, p model.Principal, id string) (model.Booking, error) {
	if p.UserID == 0 {
		return model.Booking{}, repository.ErrForbidden
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if !p.Can(model.CapabilityManageBookings) && b.UserID != p.UserID {
		return model.Booking{}, repository.ErrForbidden
	}
	return b, nil
}

// Confirm moves a pending booking to confirmed.
func (s *BookingService) Confirm(ctx context.Context, p model.Principal, id string) (model.Booking, error) {
	return s.transition(ctx, p, id, model.StatusConfirmed, queue.ActionConfirmed)
}

// Cancel moves a pending booking to cancelled.
func (s *BookingService) Cancel(ctx context.Context, p model.Principal, id string) (model.Booking, error) {
	return s.transition(ctx, p, id, model.StatusCancelled, queue.ActionCancelled)
}

func (s *BookingService) transition(ctx context.Context, p model.Principal, id string, to model.BookingStatus, action queue.Action) (model.Booking, error) {
	if err := authorize(p, model.CapabilityManageBookings); err != nil {
		return model.Booking{}, err
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if !b.Status.CanTransitionTo(to) {
		return model.Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	switch err := s.store.UpdateStatus(ctx, id, b.Status, to); {
	case errors.Is(err, repository.ErrNotFound):
		return model.Booking{}, ErrBookingNotFound
	case errors.Is(err, repository.ErrStale):
		return model.Booking{}, fmt.Errorf("%w: booking changed concurrently", ErrInvalidTransition)
	case err != nil:
		return model.Booking{}, fmt.Errorf("update status: %w", err)
	}
	b.Status = to
	s.changed(ctx, action, b)
	return b, nil
}

// Delete removes a booking permanently.
func (s *BookingService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, model.CapabilityManageBookings); err != nil {
		return err
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	s.changed(ctx, queue.ActionDeleted, b)
	return nil
}

func (s *BookingService) load(ctx context.Context, id string) (model.Booking, error) {
	b, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// changed refreshes the local snapshot and tells other instances.  Publish
// failures are logged; the change itself is already stored.
func (s *BookingService) changed(ctx context.Context, action queue.Action, b model.Booking) {
	s.feed.Notify()
	if s.events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pctx, queue.NewBookingEvent(action, b)); err != nil {
		s.log.Warnf("booking-events: publish %s %s: %v", action, b.ID, err)
	}
}
