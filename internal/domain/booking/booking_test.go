package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusrent/internal/domain/product"
	"campusrent/internal/domain/shared/daterange"
	"campusrent/internal/domain/shared/money"
)

func fixtureItem() *product.Product {
	return &product.Product{
		ID:          "item-1",
		OwnerID:     "owner-1",
		Name:        "Graphing calculator",
		DailyPrice:  money.Must(10000, "RUB"),
		IsAvailable: true,
	}
}

func fixturePeriod(t *testing.T, daysAhead, length int) daterange.DateRange {
	t.Helper()
	start := daterange.Day(time.Now().UTC()).AddDate(0, 0, daysAhead)
	period, err := daterange.New(start, start.AddDate(0, 0, length))
	require.NoError(t, err)
	return period
}

func TestNewBookingPricesByDay(t *testing.T) {
	start := daterange.Day(time.Now().UTC()).AddDate(0, 0, 7)
	period, err := daterange.New(start, start.AddDate(0, 0, 5))
	require.NoError(t, err)

	b, err := NewBooking(CreateParams{
		ID:        "bk-1",
		RenterID:  "renter-1",
		Item:      fixtureItem(),
		Period:    period,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "owner-1", b.OwnerID)
	assert.Equal(t, int64(50000), b.TotalCost.Amount, "5 days at 10000 per day")
	assert.Equal(t, "RUB", b.TotalCost.Currency)

	events := b.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "booking.requested", events[0].EventName())
}

func TestNewBookingValidation(t *testing.T) {
	period := fixturePeriod(t, 7, 3)

	t.Run("renter required", func(t *testing.T) {
		_, err := NewBooking(CreateParams{ID: "bk", Item: fixtureItem(), Period: period, CreatedAt: time.Now()})
		assert.ErrorIs(t, err, ErrRenterRequired)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := NewBooking(CreateParams{ID: "bk", RenterID: "renter-1", Period: period, CreatedAt: time.Now()})
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("self booking", func(t *testing.T) {
		_, err := NewBooking(CreateParams{ID: "bk", RenterID: "owner-1", Item: fixtureItem(), Period: period, CreatedAt: time.Now()})
		assert.ErrorIs(t, err, ErrSelfBooking)
	})

	t.Run("item withdrawn", func(t *testing.T) {
		item := fixtureItem()
		item.Withdraw()
		_, err := NewBooking(CreateParams{ID: "bk", RenterID: "renter-1", Item: item, Period: period, CreatedAt: time.Now()})
		assert.ErrorIs(t, err, product.ErrUnavailable)
	})

	t.Run("start in past", func(t *testing.T) {
		past := fixturePeriod(t, -10, 3)
		_, err := NewBooking(CreateParams{ID: "bk", RenterID: "renter-1", Item: fixtureItem(), Period: past, CreatedAt: time.Now()})
		assert.ErrorIs(t, err, ErrStartInPast)
	})
}

func TestLifecycleHappyPath(t *testing.T) {
	b, err := NewBooking(CreateParams{
		ID:        "bk-1",
		RenterID:  "renter-1",
		Item:      fixtureItem(),
		Period:    fixturePeriod(t, 7, 3),
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	b.ClearEvents()
	now := time.Now()

	require.NoError(t, b.Confirm(now))
	assert.Equal(t, StatusConfirmed, b.Status)

	require.NoError(t, b.Activate(now))
	assert.Equal(t, StatusActive, b.Status)

	require.NoError(t, b.Complete(now))
	assert.Equal(t, StatusCompleted, b.Status)
	assert.True(t, b.Status.IsTerminal())

	names := make([]string, 0, 3)
	for _, ev := range b.PendingEvents() {
		names = append(names, ev.EventName())
	}
	assert.Equal(t, []string{"booking.confirmed", "booking.activated", "booking.completed"}, names)
}

func TestLifecycleRejectsOutOfOrderTransitions(t *testing.T) {
	now := time.Now()

	b := &Booking{Status: StatusPending}
	assert.ErrorIs(t, b.Activate(now), ErrInvalidState, "pending cannot skip to active")
	assert.ErrorIs(t, b.Complete(now), ErrInvalidState)

	require.NoError(t, b.Cancel(now))
	assert.Equal(t, StatusCancelled, b.Status)
	assert.ErrorIs(t, b.Confirm(now), ErrInvalidState, "cancelled is terminal")
	assert.ErrorIs(t, b.Cancel(now), ErrInvalidState, "no double decision")

	confirmed := &Booking{Status: StatusConfirmed}
	assert.ErrorIs(t, confirmed.Confirm(now), ErrInvalidState)
	assert.ErrorIs(t, confirmed.Cancel(now), ErrInvalidState, "decided bookings cannot be re-decided")
	assert.ErrorIs(t, confirmed.Complete(now), ErrInvalidState, "active is a mandatory stop before completed")
}

func TestBlockingStatuses(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusConfirmed, StatusActive}, BlockingStatuses())
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
