package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
	"campusrent/internal/domain/shared/money"
	"campusrent/internal/infra/storage/memory"
)

type fixtures struct {
	products *memory.ProductRepository
	bookings *memory.BookingRepository
	factory  memory.Factory
	outbox   *memory.Outbox
}

func newFixtures() *fixtures {
	products := memory.NewProductRepository()
	bookings := memory.NewBookingRepository()
	return &fixtures{
		products: products,
		bookings: bookings,
		factory: memory.Factory{
			ProductRepo: products,
			BookingRepo: bookings,
			ReviewsRepo: memory.NewReviewsRepository(),
			UserRepo:    memory.NewUserRepository(),
		},
		outbox: memory.NewOutbox(),
	}
}

func (f *fixtures) seedProduct(t *testing.T, id, ownerID string, dailyPrice int64) *domainproduct.Product {
	t.Helper()
	item, err := domainproduct.New(domainproduct.CreateParams{
		ID:         domainproduct.ID(id),
		OwnerID:    ownerID,
		Name:       "Camping tent " + id,
		DailyPrice: money.Must(dailyPrice, "RUB"),
	})
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), item))
	return item
}

func (f *fixtures) seedBooking(t *testing.T, id, productID, renterID string, status domainbooking.Status, period domainrange.DateRange) *domainbooking.Booking {
	t.Helper()
	b := &domainbooking.Booking{
		ID:        domainbooking.BookingID(id),
		RenterID:  renterID,
		OwnerID:   "owner-1",
		ProductID: domainproduct.ID(productID),
		Period:    period,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.bookings.Save(context.Background(), b))
	return b
}

// futurePeriod builds a range starting daysAhead days from today.
func futurePeriod(t *testing.T, daysAhead, length int) domainrange.DateRange {
	t.Helper()
	start := domainrange.Day(time.Now().UTC()).AddDate(0, 0, daysAhead)
	period, err := domainrange.New(start, start.AddDate(0, 0, length))
	require.NoError(t, err)
	return period
}

// stagedEvents flushes the outbox and returns everything recorded so far.
func (f *fixtures) stagedEventNames(t *testing.T) []string {
	t.Helper()
	require.NoError(t, f.outbox.Flush(context.Background()))
	records := f.outbox.Drain()
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	return names
}
