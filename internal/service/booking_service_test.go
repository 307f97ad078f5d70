package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/speaker-booking-desk/internal/model"
	"github.com/iliyamo/speaker-booking-desk/internal/queue"
	"github.com/iliyamo/speaker-booking-desk/internal/repository"
)

func newBookingService() (*BookingService, *mockBookingStore, *mockPublisher, *countingNotifier) {
	store := &mockBookingStore{}
	pub := &mockPublisher{}
	feed := &countingNotifier{}
	return NewBookingService(store, pub, feed, quietLogger()), store, pub, feed
}

func validInput() BookingInput {
	return BookingInput{
		Name:        " Ann ",
		Email:       "spoofed@example.com",
		Company:     "Acme",
		EventType:   "Keynote",
		EventDate:   "2024-06-01",
		EventTime:   "09:30",
		Duration:    "  ",
		Location:    "Cape Town",
		Description: "Kickoff",
	}
}

func TestSubmit_BindsPrincipalEmail(t *testing.T) {
	svc, store, pub, feed := newBookingService()
	ctx := context.Background()

	store.On("Create", ctx, mock.MatchedBy(func(b model.Booking) bool {
		return b.Email == user.Email && b.UserID == user.UserID && b.Name == "Ann" &&
			b.Status == model.StatusPending && b.Duration == nil && model.Deref(b.EventTime) == "09:30"
	})).Return(model.Booking{ID: "b-1", UserID: 7, Email: user.Email, Status: model.StatusPending}, nil)
	pub.On("Publish", mock.Anything, eventWithAction(queue.ActionCreated)).Return(nil)

	b, err := svc.Submit(ctx, user, validInput())
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, 1, feed.n)
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestSubmit_MissingFieldsInOrder(t *testing.T) {
	svc, store, _, _ := newBookingService()
	in := validInput()
	in.Name, in.Location, in.Description = "", " ", ""

	_, err := svc.Submit(context.Background(), user, in)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "please fill in all required fields: name, location, description")
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_BadDate(t *testing.T) {
	svc, _, _, _ := newBookingService()
	in := validInput()
	in.EventDate = "01/06/2024"

	_, err := svc.Submit(context.Background(), user, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_RequiresUserRole(t *testing.T) {
	svc, _, _, _ := newBookingService()
	_, err := svc.Submit(context.Background(), admin, validInput())
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = svc.Submit(context.Background(), model.Principal{}, validInput())
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestSubmit_PublishFailureIsNotFatal(t *testing.T) {
	svc, store, pub, feed := newBookingService()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Booking{ID: "b-1"}, nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := svc.Submit(context.Background(), user, validInput())
	require.NoError(t, err)
	assert.Equal(t, 1, feed.n)
}

func TestList_Filters(t *testing.T) {
	svc, store, _, _ := newBookingService()
	ctx := context.Background()
	store.On("ListAll", ctx).Return([]model.Booking{{ID: "a"}, {ID: "b"}}, nil)
	store.On("ListByStatus", ctx, model.StatusConfirmed).Return([]model.Booking{{ID: "b"}}, nil)

	all, err := svc.List(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = svc.List(ctx, admin, "ALL")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := svc.List(ctx, admin, "confirmed")
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	_, err = svc.List(ctx, admin, "archived")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.List(ctx, user, "")
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestGet_Ownership(t *testing.T) {
	svc, store, _, _ := newBookingService()
	ctx := context.Background()
	store.On("GetByID", ctx, "b-1").Return(model.Booking{ID: "b-1", UserID: user.UserID}, nil)
	store.On("GetByID", ctx, "nope").Return(model.Booking{}, repository.ErrNotFound)

	_, err := svc.Get(ctx, user, "b-1")
	assert.NoError(t, err)
	_, err = svc.Get(ctx, admin, "b-1")
	assert.NoError(t, err)
	_, err = svc.Get(ctx, other, "b-1")
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = svc.Get(ctx, admin, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed", func(t *testing.T) {
		svc, store, pub, feed := newBookingService()
		store.On("GetByID", ctx, "b-1").Return(model.Booking{ID: "b-1", Status: model.StatusPending}, nil)
		store.On("UpdateStatus", ctx, "b-1", model.StatusPending, model.StatusConfirmed).Return(nil)
		pub.On("Publish", mock.Anything, eventWithAction(queue.ActionConfirmed)).Return(nil)

		b, err := svc.Confirm(ctx, admin, "b-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, b.Status)
		assert.Equal(t, 1, feed.n)
		pub.AssertExpectations(t)
	})

	t.Run("terminal status rejected", func(t *testing.T) {
		svc, store, _, feed := newBookingService()
		store.On("GetByID", ctx, "b-1").Return(model.Booking{ID: "b-1", Status: model.StatusCancelled}, nil)

		_, err := svc.Confirm(ctx, admin, "b-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = svc.Cancel(ctx, admin, "b-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Zero(t, feed.n)
	})

	t.Run("concurrent change", func(t *testing.T) {
		svc, store, _, _ := newBookingService()
		store.On("GetByID", ctx, "b-1").Return(model.Booking{ID: "b-1", Status: model.StatusPending}, nil)
		store.On("UpdateStatus", ctx, "b-1", model.StatusPending, model.StatusCancelled).Return(repository.ErrStale)

		_, err := svc.Cancel(ctx, admin, "b-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("users cannot manage", func(t *testing.T) {
		svc, _, _, _ := newBookingService()
		_, err := svc.Cancel(ctx, user, "b-1")
		assert.ErrorIs(t, err, repository.ErrForbidden)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, pub, feed := newBookingService()
	store.On("GetByID", ctx, "b-1").Return(model.Booking{ID: "b-1", Status: model.StatusConfirmed}, nil)
	store.On("Delete", ctx, "b-1").Return(nil)
	store.On("GetByID", ctx, "gone").Return(model.Booking{}, repository.ErrNotFound)
	pub.On("Publish", mock.Anything, eventWithAction(queue.ActionDeleted)).Return(nil)

	require.NoError(t, svc.Delete(ctx, admin, "b-1"))
	assert.Equal(t, 1, feed.n)
	assert.ErrorIs(t, svc.Delete(ctx, admin, "gone"), ErrBookingNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, user, "b-1"), repository.ErrForbidden)
}

func TestListMine(t *testing.T) {
	svc, store, _, _ := newBookingService()
	ctx := context.Background()
	store.On("ListByUser", ctx, user.UserID).Return([]model.Booking{{ID: "b-1"}}, nil)

	out, err := svc.ListMine(ctx, user)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = svc.ListMine(ctx, model.Principal{})
	assert.ErrorIs(t, err, repository.ErrForbidden)
}
