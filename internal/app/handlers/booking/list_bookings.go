package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"campusrent/internal/app/dto"
	"campusrent/internal/app/handlers/support"
	"campusrent/internal/app/queries"
	"campusrent/internal/app/uow"
	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainreviews "campusrent/internal/domain/reviews"
)

const (
	listRenterBookingsKey = "booking.renter.list"
	listOwnerRequestsKey  = "booking.owner.list"
)

// ListRenterBookingsQuery backs the renter's "my bookings" page.
type ListRenterBookingsQuery struct {
	RenterID string
}

func (q ListRenterBookingsQuery) Key() string { return listRenterBookingsKey }

type ListRenterBookingsHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *ListRenterBookingsHandler) Handle(ctx context.Context, q ListRenterBookingsQuery) (dto.RenterBookingCollection, error) {
	renterID := strings.TrimSpace(q.RenterID)
	if renterID == "" {
		return dto.RenterBookingCollection{}, domainbooking.ErrRenterRequired
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.RenterBookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Bookings().ListByRenter(execCtx, renterID)
	if err != nil {
		return dto.RenterBookingCollection{}, err
	}

	cache := make(map[domainproduct.ID]*domainproduct.Product)
	items := make([]dto.RenterBookingSummary, 0, len(bookings))
	for _, b := range bookings {
		item, err := loadProduct(execCtx, unit.Products(), b.ProductID, cache)
		if err != nil && h.Logger != nil {
			h.Logger.Warn("product missing for booking", "booking_id", b.ID, "product_id", b.ProductID, "error", err)
		}
		reviewed := false
		if _, err := unit.Reviews().ByBooking(execCtx, b.ID); err == nil {
			reviewed = true
		} else if !errors.Is(err, domainreviews.ErrNotFound) && h.Logger != nil {
			h.Logger.Warn("review lookup failed", "booking_id", b.ID, "error", err)
		}
		canReview := b.Status == domainbooking.StatusCompleted && !reviewed
		items = append(items, dto.MapRenterBookingSummary(b, item, reviewed, canReview))
	}

	return dto.RenterBookingCollection{Items: items}, nil
}

// ListOwnerRequestsQuery backs the owner's pending-requests page; it returns
// every booking on the owner's products, newest first semantics left to the
// repository.
type ListOwnerRequestsQuery struct {
	OwnerID string
}

func (q ListOwnerRequestsQuery) Key() string { return listOwnerRequestsKey }

type ListOwnerRequestsHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *ListOwnerRequestsHandler) Handle(ctx context.Context, q ListOwnerRequestsQuery) (dto.OwnerRequestCollection, error) {
	ownerID := strings.TrimSpace(q.OwnerID)
	if ownerID == "" {
		return dto.OwnerRequestCollection{}, domainproduct.ErrOwnerRequired
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.OwnerRequestCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Bookings().ListByOwner(execCtx, ownerID)
	if err != nil {
		return dto.OwnerRequestCollection{}, err
	}

	cache := make(map[domainproduct.ID]*domainproduct.Product)
	items := make([]dto.OwnerRequestSummary, 0, len(bookings))
	for _, b := range bookings {
		item, err := loadProduct(execCtx, unit.Products(), b.ProductID, cache)
		if err != nil && h.Logger != nil {
			h.Logger.Warn("product missing for booking", "booking_id", b.ID, "product_id", b.ProductID, "error", err)
		}
		items = append(items, dto.MapOwnerRequestSummary(b, item))
	}

	return dto.OwnerRequestCollection{Items: items}, nil
}

func loadProduct(
	ctx context.Context,
	repo domainproduct.Repository,
	id domainproduct.ID,
	cache map[domainproduct.ID]*domainproduct.Product,
) (*domainproduct.Product, error) {
	if item, ok := cache[id]; ok {
		return item, nil
	}
	item, err := repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = item
	return item, nil
}

var _ queries.Handler[ListRenterBookingsQuery, dto.RenterBookingCollection] = (*ListRenterBookingsHandler)(nil)
var _ queries.Handler[ListOwnerRequestsQuery, dto.OwnerRequestCollection] = (*ListOwnerRequestsHandler)(nil)
