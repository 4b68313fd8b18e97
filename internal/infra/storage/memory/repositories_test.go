package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainreviews "campusrent/internal/domain/reviews"
	"campusrent/internal/domain/shared/daterange"
)

func testPeriod(t *testing.T, startDay, endDay int) daterange.DateRange {
	t.Helper()
	period, err := daterange.New(
		time.Date(2030, time.May, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2030, time.May, endDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return period
}

func testBooking(t *testing.T, id string, productID string, status domainbooking.Status, startDay, endDay int) *domainbooking.Booking {
	t.Helper()
	return &domainbooking.Booking{
		ID:        domainbooking.BookingID(id),
		RenterID:  "renter-" + id,
		OwnerID:   "owner-1",
		ProductID: domainproduct.ID(productID),
		Period:    testPeriod(t, startDay, endDay),
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func TestReserveRejectsBlockingOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	require.NoError(t, repo.Save(ctx, testBooking(t, "confirmed", "item-1", domainbooking.StatusConfirmed, 10, 15)))

	err := repo.Reserve(ctx, testBooking(t, "overlap", "item-1", domainbooking.StatusPending, 15, 20))
	assert.ErrorIs(t, err, domainbooking.ErrDatesUnavailable, "shared boundary day blocks")

	err = repo.Reserve(ctx, testBooking(t, "disjoint", "item-1", domainbooking.StatusPending, 16, 20))
	assert.NoError(t, err)

	err = repo.Reserve(ctx, testBooking(t, "other-item", "item-2", domainbooking.StatusPending, 10, 15))
	assert.NoError(t, err, "conflicts are scoped per product")
}

func TestReserveIgnoresNonBlockingStatuses(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	require.NoError(t, repo.Save(ctx, testBooking(t, "cancelled", "item-1", domainbooking.StatusCancelled, 10, 15)))
	require.NoError(t, repo.Save(ctx, testBooking(t, "completed", "item-1", domainbooking.StatusCompleted, 10, 15)))
	require.NoError(t, repo.Save(ctx, testBooking(t, "pending", "item-1", domainbooking.StatusPending, 10, 15)))

	err := repo.Reserve(ctx, testBooking(t, "new", "item-1", domainbooking.StatusPending, 12, 14))
	assert.NoError(t, err, "only confirmed and active bookings occupy the calendar")
}

func TestReserveSerializesConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	require.NoError(t, repo.Save(ctx, testBooking(t, "active", "item-1", domainbooking.StatusActive, 10, 20)))

	var wg sync.WaitGroup
	failures := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("racer-%d", i)
			failures <- repo.Reserve(ctx, testBooking(t, id, "item-1", domainbooking.StatusPending, 12, 18))
		}(i)
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		assert.ErrorIs(t, err, domainbooking.ErrDatesUnavailable)
	}
}

func TestSaveBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	b := testBooking(t, "bk-1", "item-1", domainbooking.StatusPending, 10, 12)
	require.NoError(t, repo.Reserve(ctx, b))
	assert.Equal(t, int64(1), b.Version)

	require.NoError(t, repo.Save(ctx, b))
	assert.Equal(t, int64(2), b.Version)
}

func TestListByProductFiltersStatuses(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	require.NoError(t, repo.Save(ctx, testBooking(t, "a", "item-1", domainbooking.StatusConfirmed, 1, 3)))
	require.NoError(t, repo.Save(ctx, testBooking(t, "b", "item-1", domainbooking.StatusCancelled, 5, 7)))
	require.NoError(t, repo.Save(ctx, testBooking(t, "c", "item-2", domainbooking.StatusConfirmed, 1, 3)))

	all, err := repo.ListByProduct(ctx, "item-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	blocking, err := repo.ListByProduct(ctx, "item-1", domainbooking.BlockingStatuses()...)
	require.NoError(t, err)
	require.Len(t, blocking, 1)
	assert.Equal(t, domainbooking.BookingID("a"), blocking[0].ID)
}

func TestReviewsRepositoryByBooking(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewsRepository()

	_, err := repo.ByBooking(ctx, "missing")
	assert.ErrorIs(t, err, domainreviews.ErrNotFound)

	review := &domainreviews.Review{ID: "rv-1", BookingID: "bk-1", LandlordID: "owner-1", Rating: 5, CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, review))

	got, err := repo.ByBooking(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, review.ID, got.ID)

	mine, err := repo.ListByLandlord(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
