package booking

import (
	"context"
	"errors"
	"time"

	"campusrent/internal/domain/product"
	"campusrent/internal/domain/shared/daterange"
	"campusrent/internal/domain/shared/events"
	"campusrent/internal/domain/shared/money"
)

var (
	ErrSelfBooking       = errors.New("booking: renter cannot book their own item")
	ErrStartInPast       = errors.New("booking: start date is in the past")
	ErrInvalidState      = errors.New("booking: invalid state transition")
	ErrDatesUnavailable  = errors.New("booking: dates already booked")
	ErrNotOwner          = errors.New("booking: only the item owner may decide")
	ErrNotFound          = errors.New("booking: not found")
	ErrRenterRequired    = errors.New("booking: renter id required")
	ErrConcurrentUpdate  = errors.New("booking: concurrent update detected")
	ErrUnknownDecision   = errors.New("booking: unknown decision")
	ErrProductMismatched = errors.New("booking: product does not match")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// BlockingStatuses are the statuses that occupy a product's calendar for
// conflict purposes. Pending requests and terminal bookings never block.
func BlockingStatuses() []Status {
	return []Status{StatusConfirmed, StatusActive}
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is a renter's date-ranged request for a product. OwnerID is a
// snapshot of the product owner taken at creation so decision authorization
// does not depend on later catalog edits.
type Booking struct {
	ID        BookingID
	RenterID  string
	OwnerID   string
	ProductID product.ID
	Period    daterange.DateRange
	TotalCost money.Money
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	// RemindedAt is set once the return reminder went out, so repeated
	// sweeps do not mail the renter again.
	RemindedAt time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	// Reserve atomically re-checks the candidate period against all blocking
	// bookings on the same product and inserts the new pending booking.
	// Returns ErrDatesUnavailable if any blocking span shares a day with it.
	Reserve(ctx context.Context, b *Booking) error
	Save(ctx context.Context, b *Booking) error
	ListByProduct(ctx context.Context, id product.ID, statuses ...Status) ([]*Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Booking, error)
	ListByStatus(ctx context.Context, status Status) ([]*Booking, error)
}

type CreateParams struct {
	ID        BookingID
	RenterID  string
	Item      *product.Product
	Period    daterange.DateRange
	CreatedAt time.Time
}

// NewBooking validates a rental request and prices it. The total cost is
// DailyPrice multiplied by the number of days in the period, computed once
// here and never recomputed afterwards.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.RenterID == "" {
		return nil, ErrRenterRequired
	}
	if params.Item == nil {
		return nil, product.ErrNotFound
	}
	if params.RenterID == params.Item.OwnerID {
		return nil, ErrSelfBooking
	}
	if !params.Item.IsAvailable {
		return nil, product.ErrUnavailable
	}
	if err := params.Period.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	if params.Period.Start.Before(daterange.Day(now)) {
		return nil, ErrStartInPast
	}
	b := &Booking{
		ID:        params.ID,
		RenterID:  params.RenterID,
		OwnerID:   params.Item.OwnerID,
		ProductID: params.Item.ID,
		Period:    params.Period,
		TotalCost: params.Item.DailyPrice.Multiply(int64(params.Period.Days())),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.Record(BookingRequested{BookingID: b.ID, ProductID: b.ProductID, RenterID: b.RenterID, OwnerID: b.OwnerID, Period: b.Period, TotalCost: b.TotalCost, At: now})
	return b, nil
}

// Confirm moves a pending request to confirmed. Owner decision.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ProductID: b.ProductID, RenterID: b.RenterID, Period: b.Period, At: b.UpdatedAt})
	return nil
}

// Cancel rejects a pending request. Owner decision; already-decided bookings
// cannot be re-decided.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ProductID: b.ProductID, RenterID: b.RenterID, At: b.UpdatedAt})
	return nil
}

// Activate marks a confirmed booking as running once its start date is
// reached. Invoked by the periodic advancer, not user-facing.
func (b *Booking) Activate(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusActive
	b.UpdatedAt = now.UTC()
	b.Record(BookingActivated{BookingID: b.ID, ProductID: b.ProductID, At: b.UpdatedAt})
	return nil
}

// MarkReminded records that the return reminder for this rental was
// delivered.
func (b *Booking) MarkReminded(now time.Time) {
	b.RemindedAt = now.UTC()
	b.UpdatedAt = b.RemindedAt
}

// Complete closes an active booking at or after its end date.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusActive {
		return ErrInvalidState
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now.UTC()
	b.Record(BookingCompleted{BookingID: b.ID, ProductID: b.ProductID, RenterID: b.RenterID, OwnerID: b.OwnerID, At: b.UpdatedAt})
	return nil
}
