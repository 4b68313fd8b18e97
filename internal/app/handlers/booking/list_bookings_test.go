package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
)

func TestListRenterBookings(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "done", "item-1", "renter-1", domainbooking.StatusCompleted, futurePeriod(t, -10, 3))
	f.seedBooking(t, "pending", "item-1", "renter-1", domainbooking.StatusPending, futurePeriod(t, 7, 3))
	f.seedBooking(t, "foreign", "item-1", "renter-2", domainbooking.StatusPending, futurePeriod(t, 20, 3))

	handler := &ListRenterBookingsHandler{UoWFactory: f.factory}
	page, err := handler.Handle(context.Background(), ListRenterBookingsQuery{RenterID: "renter-1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	byID := make(map[string]int, len(page.Items))
	for i, item := range page.Items {
		byID[item.ID] = i
		assert.Equal(t, "item-1", item.Product.ID)
		assert.Equal(t, "Camping tent item-1", item.Product.Name)
	}

	completed := page.Items[byID["done"]]
	assert.True(t, completed.CanReview, "completed and unreviewed")
	assert.False(t, completed.ReviewSubmitted)

	pending := page.Items[byID["pending"]]
	assert.False(t, pending.CanReview, "only completed bookings are reviewable")
}

func TestListRenterBookingsRequiresRenter(t *testing.T) {
	handler := &ListRenterBookingsHandler{UoWFactory: newFixtures().factory}
	_, err := handler.Handle(context.Background(), ListRenterBookingsQuery{RenterID: "  "})
	assert.ErrorIs(t, err, domainbooking.ErrRenterRequired)
}

func TestListOwnerRequests(t *testing.T) {
	f := newFixtures()
	f.seedProduct(t, "item-1", "owner-1", 10000)
	f.seedBooking(t, "bk-1", "item-1", "renter-1", domainbooking.StatusPending, futurePeriod(t, 7, 3))
	f.seedBooking(t, "bk-2", "item-1", "renter-2", domainbooking.StatusConfirmed, futurePeriod(t, 14, 3))

	handler := &ListOwnerRequestsHandler{UoWFactory: f.factory}
	page, err := handler.Handle(context.Background(), ListOwnerRequestsQuery{OwnerID: "owner-1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.NotEmpty(t, item.RenterID)
		assert.Equal(t, "item-1", item.Product.ID)
	}

	_, err = handler.Handle(context.Background(), ListOwnerRequestsQuery{OwnerID: ""})
	assert.ErrorIs(t, err, domainproduct.ErrOwnerRequired)
}
