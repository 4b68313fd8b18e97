package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusrent/internal/app/commands"
	bookingapp "campusrent/internal/app/handlers/booking"
	"campusrent/internal/app/middleware"
	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
	"campusrent/internal/domain/shared/money"
	"campusrent/internal/infra/storage/memory"
)

// buildPipeline wires the same chain main() uses, over in-memory stores.
func buildPipeline(t *testing.T) (commands.Bus, *memory.BookingRepository, *memory.Outbox) {
	t.Helper()

	products := memory.NewProductRepository()
	bookings := memory.NewBookingRepository()
	factory := memory.Factory{
		ProductRepo: products,
		BookingRepo: bookings,
		ReviewsRepo: memory.NewReviewsRepository(),
		UserRepo:    memory.NewUserRepository(),
	}
	box := memory.NewOutbox()

	item, err := domainproduct.New(domainproduct.CreateParams{
		ID:         "item-1",
		OwnerID:    "owner-1",
		Name:       "Road bike",
		DailyPrice: money.Must(10000, "RUB"),
	})
	require.NoError(t, err)
	require.NoError(t, products.Save(context.Background(), item))

	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{Outbox: box})
	commands.RegisterHandler(bus, bookingapp.DecideBookingCommand{}.Key(), &bookingapp.DecideBookingHandler{Outbox: box})

	chained := middleware.ChainCommands(
		bus,
		middleware.Validation(),
		middleware.Idempotency(memory.NewIdempotencyStore(), nil),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)
	return chained, bookings, box
}

func requestCmd(t *testing.T, commandID, renterID, idempotencyKey string) bookingapp.RequestBookingCommand {
	t.Helper()
	start := domainrange.Day(time.Now().UTC()).AddDate(0, 0, 7)
	return bookingapp.RequestBookingCommand{
		CommandID:       commandID,
		ProductID:       "item-1",
		RenterID:        renterID,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 3),
		IdempotencyKeyV: idempotencyKey,
	}
}

func TestPipelineReplaysIdempotentCommand(t *testing.T) {
	bus, bookings, _ := buildPipeline(t)
	ctx := context.Background()

	first, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](
		ctx, bus, requestCmd(t, "bk-1", "renter-1", "retry-key"))
	require.NoError(t, err)

	// Same key, different command id: the stored result is replayed and no
	// second booking is created.
	second, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](
		ctx, bus, requestCmd(t, "bk-2", "renter-1", "retry-key"))
	require.NoError(t, err)
	assert.Equal(t, first.BookingID, second.BookingID)

	_, err = bookings.ByID(ctx, "bk-2")
	assert.ErrorIs(t, err, domainbooking.ErrNotFound)
}

func TestPipelineFlushesOutboxOnSuccess(t *testing.T) {
	bus, _, box := buildPipeline(t)
	ctx := context.Background()

	_, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](
		ctx, bus, requestCmd(t, "bk-1", "renter-1", ""))
	require.NoError(t, err)

	flushed := box.Drain()
	require.Len(t, flushed, 1)
	assert.Equal(t, "booking.requested", flushed[0].Name)
	assert.Equal(t, "bk-1", flushed[0].Aggregate)
}

func TestPipelineRejectsInvalidCommandBeforeHandler(t *testing.T) {
	bus, _, _ := buildPipeline(t)

	_, err := commands.Dispatch[bookingapp.DecideBookingCommand, *bookingapp.DecideBookingResult](
		context.Background(), bus, bookingapp.DecideBookingCommand{
			BookingID: "bk-1",
			ActorID:   "owner-1",
			Decision:  "maybe",
		})
	assert.ErrorIs(t, err, domainbooking.ErrUnknownDecision)
}
