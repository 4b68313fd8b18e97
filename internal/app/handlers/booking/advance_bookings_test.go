package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
)

func TestAdvanceBookingsActivatesAndCompletes(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)

	// Confirmed and starting today: becomes active.
	f.seedBooking(t, "starting", "item-1", "renter-1", domainbooking.StatusConfirmed, futurePeriod(t, 0, 5))
	// Confirmed but starting next week: untouched.
	f.seedBooking(t, "upcoming", "item-1", "renter-2", domainbooking.StatusConfirmed, futurePeriod(t, 7, 5))
	// Active and past its end date: becomes completed.
	f.seedBooking(t, "ending", "item-1", "renter-3", domainbooking.StatusActive, futurePeriod(t, -6, 5))

	handler := &AdvanceBookingsHandler{UoWFactory: f.factory, Outbox: f.outbox}
	result, err := handler.Handle(context.Background(), AdvanceBookingsCommand{Now: time.Now()})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Activated)
	assert.Equal(t, 1, result.Completed)

	ctx := context.Background()
	started, err := f.bookings.ByID(ctx, "starting")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusActive, started.Status)

	upcoming, err := f.bookings.ByID(ctx, "upcoming")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusConfirmed, upcoming.Status)

	ended, err := f.bookings.ByID(ctx, "ending")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusCompleted, ended.Status)

	assert.ElementsMatch(t, []string{"booking.activated", "booking.completed"}, f.stagedEventNames(t))
}

func TestAdvanceBookingsIsIdempotent(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "starting", "item-1", "renter-1", domainbooking.StatusConfirmed, futurePeriod(t, 0, 5))

	handler := &AdvanceBookingsHandler{UoWFactory: f.factory, Outbox: f.outbox}

	first, err := handler.Handle(context.Background(), AdvanceBookingsCommand{Now: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Activated)

	second, err := handler.Handle(context.Background(), AdvanceBookingsCommand{Now: time.Now()})
	require.NoError(t, err)
	assert.Zero(t, second.Activated, "already-advanced bookings no longer match")
	assert.Zero(t, second.Completed)
}

func TestAdvanceBookingsNothingDue(t *testing.T) {
	f := newFixtures()
	handler := &AdvanceBookingsHandler{UoWFactory: f.factory, Outbox: f.outbox}

	result, err := handler.Handle(context.Background(), AdvanceBookingsCommand{Now: time.Now()})
	require.NoError(t, err)
	assert.Zero(t, result.Activated)
	assert.Zero(t, result.Completed)
	assert.Empty(t, f.stagedEventNames(t))
}
