package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
	"campusrent/internal/infra/storage/memory"
)

func seededFactory(t *testing.T) (memory.Factory, *memory.BookingRepository) {
	t.Helper()
	bookings := memory.NewBookingRepository()
	factory := memory.Factory{
		ProductRepo: memory.NewProductRepository(),
		BookingRepo: bookings,
		ReviewsRepo: memory.NewReviewsRepository(),
		UserRepo:    memory.NewUserRepository(),
	}
	return factory, bookings
}

func seedBooking(t *testing.T, repo *memory.BookingRepository, id string, status domainbooking.Status, startDay, endDay int) {
	t.Helper()
	period, err := domainrange.New(
		time.Date(2030, time.July, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2030, time.July, endDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), &domainbooking.Booking{
		ID:        domainbooking.BookingID(id),
		RenterID:  "renter-1",
		OwnerID:   "owner-1",
		ProductID: "item-1",
		Period:    period,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}))
}

func TestGetCalendarProjectsBlockingBookings(t *testing.T) {
	factory, bookings := seededFactory(t)
	seedBooking(t, bookings, "confirmed", domainbooking.StatusConfirmed, 1, 5)
	seedBooking(t, bookings, "active", domainbooking.StatusActive, 10, 12)
	seedBooking(t, bookings, "pending", domainbooking.StatusPending, 20, 25)
	seedBooking(t, bookings, "cancelled", domainbooking.StatusCancelled, 20, 25)

	handler := &GetCalendarHandler{UoWFactory: factory}
	calendar, err := handler.Handle(context.Background(), GetCalendarQuery{ProductID: "item-1"})
	require.NoError(t, err)

	assert.Equal(t, "item-1", calendar.ProductID)
	require.Len(t, calendar.Events, 2, "pending and cancelled bookings never appear")

	starts := make(map[string]string, len(calendar.Events))
	for _, ev := range calendar.Events {
		starts[ev.Start] = ev.End
		assert.Equal(t, "Booked", ev.Title)
		assert.True(t, ev.AllDay)
	}
	assert.Equal(t, "2030-07-06", starts["2030-07-01"], "end is exclusive, one day past the last occupied day")
	assert.Equal(t, "2030-07-13", starts["2030-07-10"])
}

func TestGetCalendarEmptyProduct(t *testing.T) {
	factory, _ := seededFactory(t)
	handler := &GetCalendarHandler{UoWFactory: factory}

	calendar, err := handler.Handle(context.Background(), GetCalendarQuery{ProductID: "item-1"})
	require.NoError(t, err)
	assert.Empty(t, calendar.Events)

	_, err = handler.Handle(context.Background(), GetCalendarQuery{ProductID: "  "})
	assert.ErrorIs(t, err, domainproduct.ErrNotFound)
}

func TestCheckRange(t *testing.T) {
	factory, bookings := seededFactory(t)
	seedBooking(t, bookings, "confirmed", domainbooking.StatusConfirmed, 10, 15)

	handler := &CheckRangeHandler{UoWFactory: factory}

	check := func(startDay, endDay int) bool {
		t.Helper()
		result, err := handler.Handle(context.Background(), CheckRangeQuery{
			ProductID: "item-1",
			StartDate: time.Date(2030, time.July, startDay, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2030, time.July, endDay, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		return result.Conflict
	}

	assert.True(t, check(12, 20))
	assert.True(t, check(15, 20), "touching the occupied end day conflicts")
	assert.True(t, check(5, 10), "touching the occupied start day conflicts")
	assert.False(t, check(16, 20))
	assert.False(t, check(5, 9))
}

func TestCheckRangeRejectsInvalidInput(t *testing.T) {
	factory, _ := seededFactory(t)
	handler := &CheckRangeHandler{UoWFactory: factory}

	_, err := handler.Handle(context.Background(), CheckRangeQuery{
		ProductID: "item-1",
		StartDate: time.Date(2030, time.July, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, time.July, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domainrange.ErrInvalidRange)

	_, err = handler.Handle(context.Background(), CheckRangeQuery{ProductID: ""})
	assert.ErrorIs(t, err, domainproduct.ErrNotFound)
}
