package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
)

func TestDecideBookingConfirm(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "bk-1", "item-1", "renter-1", domainbooking.StatusPending, futurePeriod(t, 7, 4))
	handler := &DecideBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	result, err := handler.Handle(context.Background(), DecideBookingCommand{
		BookingID: "bk-1",
		ActorID:   "owner-1",
		Decision:  DecisionConfirm,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainbooking.StatusConfirmed), result.Status)

	stored, err := f.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusConfirmed, stored.Status)
	assert.Equal(t, []string{"booking.confirmed"}, f.stagedEventNames(t))
}

func TestDecideBookingCancel(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "bk-1", "item-1", "renter-1", domainbooking.StatusPending, futurePeriod(t, 7, 4))
	handler := &DecideBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	result, err := handler.Handle(context.Background(), DecideBookingCommand{
		BookingID: "bk-1",
		ActorID:   "owner-1",
		Decision:  DecisionCancel,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainbooking.StatusCancelled), result.Status)
}

func TestDecideBookingAuthorization(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "bk-1", "item-1", "renter-1", domainbooking.StatusPending, futurePeriod(t, 7, 4))
	handler := &DecideBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	for _, actor := range []string{"renter-1", "somebody-else"} {
		_, err := handler.Handle(context.Background(), DecideBookingCommand{
			BookingID: "bk-1",
			ActorID:   actor,
			Decision:  DecisionConfirm,
		})
		assert.ErrorIs(t, err, domainbooking.ErrNotOwner)
	}

	stored, err := f.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusPending, stored.Status, "denied decision leaves the request untouched")
}

func TestDecideBookingCannotRedecide(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "bk-1", "item-1", "renter-1", domainbooking.StatusConfirmed, futurePeriod(t, 7, 4))
	handler := &DecideBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	_, err := handler.Handle(context.Background(), DecideBookingCommand{
		BookingID: "bk-1",
		ActorID:   "owner-1",
		Decision:  DecisionCancel,
	})
	assert.ErrorIs(t, err, domainbooking.ErrInvalidState)

	stored, err := f.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusConfirmed, stored.Status, "first decision stands")
}

func TestDecideBookingUnknownDecision(t *testing.T) {
	f := newFixtures()
	handler := &DecideBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	_, err := handler.Handle(context.Background(), DecideBookingCommand{
		BookingID: "bk-1",
		ActorID:   "owner-1",
		Decision:  "approve",
	})
	assert.ErrorIs(t, err, domainbooking.ErrUnknownDecision)
}

func TestDecideBookingNotFound(t *testing.T) {
	f := newFixtures()
	handler := &DecideBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	_, err := handler.Handle(context.Background(), DecideBookingCommand{
		BookingID: "missing",
		ActorID:   "owner-1",
		Decision:  DecisionConfirm,
	})
	assert.ErrorIs(t, err, domainbooking.ErrNotFound)
}
