package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainreviews "campusrent/internal/domain/reviews"
)

// ProductRepository is an in-memory implementation for demo and test purposes.
type ProductRepository struct {
	mu    sync.RWMutex
	items map[domainproduct.ID]*domainproduct.Product
}

// NewProductRepository builds an empty repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		items: make(map[domainproduct.ID]*domainproduct.Product),
	}
}

// ByID returns a product or product.ErrNotFound.
func (r *ProductRepository) ByID(ctx context.Context, id domainproduct.ID) (*domainproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domainproduct.ErrNotFound
	}
	return item, nil
}

// Save stores/updates a catalog entry.
func (r *ProductRepository) Save(ctx context.Context, item *domainproduct.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domainproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainproduct.Product, 0)
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			matches = append(matches, item)
		}
	}
	sortProducts(matches)
	return matches, nil
}

func (r *ProductRepository) ListAvailable(ctx context.Context) ([]*domainproduct.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainproduct.Product, 0)
	for _, item := range r.items {
		if item.IsAvailable {
			matches = append(matches, item)
		}
	}
	sortProducts(matches)
	return matches, nil
}

func sortProducts(items []*domainproduct.Product) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// BookingRepository stores bookings in memory. Reserve holds the write lock
// for the whole check-and-insert, so two racing requests for the same product
// serialize and the loser observes the winner's booking.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

// NewBookingRepository builds an empty booking repo.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

// ByID fetches a booking.
func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return b, nil
}

// Reserve inserts the pending booking unless a blocking booking on the same
// product shares a day with it.
func (r *BookingRepository) Reserve(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	blocking := domainbooking.BlockingStatuses()
	for _, existing := range r.items {
		if existing.ProductID != b.ProductID {
			continue
		}
		if !statusIn(existing.Status, blocking) {
			continue
		}
		if existing.Period.Conflicts(b.Period) {
			return domainbooking.ErrDatesUnavailable
		}
	}
	b.Version++
	r.items[b.ID] = b
	return nil
}

// Save stores the current booking state.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ListByProduct(ctx context.Context, id domainproduct.ID, statuses ...domainbooking.Status) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.ProductID != id {
			continue
		}
		if len(statuses) > 0 && !statusIn(b.Status, statuses) {
			continue
		}
		matches = append(matches, b)
	}
	sortBookings(matches)
	return matches, nil
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := strings.TrimSpace(renterID)
	if id == "" {
		return nil, domainbooking.ErrRenterRequired
	}
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.RenterID == id {
			matches = append(matches, b)
		}
	}
	sortBookings(matches)
	return matches, nil
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.OwnerID == ownerID {
			matches = append(matches, b)
		}
	}
	sortBookings(matches)
	return matches, nil
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domainbooking.Status) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.Status == status {
			matches = append(matches, b)
		}
	}
	sortBookings(matches)
	return matches, nil
}

func sortBookings(items []*domainbooking.Booking) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func statusIn(status domainbooking.Status, set []domainbooking.Status) bool {
	for _, candidate := range set {
		if status == candidate {
			return true
		}
	}
	return false
}

// ReviewsRepository is a lightweight in-memory review store.
type ReviewsRepository struct {
	mu        sync.RWMutex
	byBooking map[domainbooking.BookingID]*domainreviews.Review
}

// NewReviewsRepository builds an empty reviews store.
func NewReviewsRepository() *ReviewsRepository {
	return &ReviewsRepository{byBooking: make(map[domainbooking.BookingID]*domainreviews.Review)}
}

// ByBooking locates the review left for a booking, if any.
func (r *ReviewsRepository) ByBooking(ctx context.Context, bookingID domainbooking.BookingID) (*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if review, ok := r.byBooking[bookingID]; ok {
		return review, nil
	}
	return nil, domainreviews.ErrNotFound
}

func (r *ReviewsRepository) ListByLandlord(ctx context.Context, landlordID string) ([]*domainreviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreviews.Review, 0)
	for _, review := range r.byBooking {
		if review.LandlordID == landlordID {
			matches = append(matches, review)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// Save writes the review entry keyed by booking.
func (r *ReviewsRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byBooking[review.BookingID] = review
	return nil
}

var (
	_ domainproduct.Repository = (*ProductRepository)(nil)
	_ domainbooking.Repository = (*BookingRepository)(nil)
	_ domainreviews.Repository = (*ReviewsRepository)(nil)
)
