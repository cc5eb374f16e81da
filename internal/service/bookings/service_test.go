package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ActivityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ActivityService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByConsumerID(_ context.Context, consumerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ConsumerID != consumerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

type fakeCatalog struct {
	business *catalogservice.Business
	err      error
}

func (f *fakeCatalog) GetBusiness(_ context.Context, _ int64) (*catalogservice.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func futureBooking(id, consumerID int64) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		ActivityID:        10,
		BusinessID:        1,
		ConsumerID:        consumerID,
		BookingDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:         "10:00",
		DurationMinutes:   60,
		ParticipantsCount: 2,
		Status:            domain.StatusActive,
	}
}

func newBookingsService(repo *fakeBookingRepo, catalog CatalogServiceClient, now time.Time) *Service {
	svc := NewService(repo, catalog, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func beforeSlot() time.Time {
	return time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
}

func TestCancel_OwnerCancelsBeforeSlotStart(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: futureBooking(1, 42),
	}}
	svc := newBookingsService(repo, &fakeCatalog{}, beforeSlot())

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ConsumerID:         42,
		CancellationReason: "планы изменились",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "планы изменились", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
}

func TestCancel_IdempotentWhenAlreadyCancelled(t *testing.T) {
	booking := futureBooking(1, 42)
	booking.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking}}
	svc := newBookingsService(repo, &fakeCatalog{}, beforeSlot())

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ConsumerID: 42})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	booking := futureBooking(1, 42)
	booking.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking}}
	svc := newBookingsService(repo, &fakeCatalog{}, beforeSlot())

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ConsumerID: 42})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_TooLateAfterSlotStart(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: futureBooking(1, 42),
	}}
	// Слот начался в 10:00, сейчас 10:05
	svc := newBookingsService(repo, &fakeCatalog{}, time.Date(2026, 9, 15, 10, 5, 0, 0, time.UTC))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ConsumerID: 42})

	assert.ErrorIs(t, err, ErrTooLateToCancel)
}

func TestCancel_OnlyOwnerMayCancel(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: futureBooking(1, 42),
	}}
	svc := newBookingsService(repo, &fakeCatalog{}, beforeSlot())

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ConsumerID: 99})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: futureBooking(1, 42),
	}}
	business := &catalogservice.Business{ID: 1, OwnerID: 100, ManagerIDs: []int64{200}}

	testCases := []struct {
		name      string
		userID    int64
		expectErr error
	}{
		{name: "owner sees own booking", userID: 42},
		{name: "business owner sees booking", userID: 100},
		{name: "business manager sees booking", userID: 200},
		{name: "stranger denied", userID: 7, expectErr: ErrAccessDenied},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newBookingsService(repo, &fakeCatalog{business: business}, beforeSlot())

			resp, err := svc.GetByID(context.Background(), 1, tc.userID)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), resp.ID)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newBookingsService(&fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, &fakeCatalog{}, beforeSlot())

	_, err := svc.GetByID(context.Background(), 404, 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBusinessBookings_ManagerOnly(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: futureBooking(1, 42),
	}}
	business := &catalogservice.Business{ID: 1, OwnerID: 100}

	svc := newBookingsService(repo, &fakeCatalog{business: business}, beforeSlot())

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     100,
		BusinessID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     7,
		BusinessID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
