package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/middleware"
	"campusrent/internal/app/outbox"
	"campusrent/internal/app/policies"
	"campusrent/internal/app/uow"
	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
)

const requestBookingKey = "booking.request"

// RequestBookingCommand creates a pending rental request for a product.
type RequestBookingCommand struct {
	CommandID       string
	ProductID       string
	RenterID        string
	StartDate       time.Time
	EndDate         time.Time
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	BookingID string `json:"booking_id"`
	TotalCost int64  `json:"total_cost"`
	Status    string `json:"status"`
}

type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Notifier   policies.Notifier
	Logger     *slog.Logger
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.Attach(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	item, err := unit.Products().ByID(ctx, domainproduct.ID(cmd.ProductID))
	if err != nil {
		return nil, err
	}

	period, err := domainrange.New(cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(cmd.CommandID),
		RenterID:  cmd.RenterID,
		Item:      item,
		Period:    period,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	// Reserve is the atomic check-and-reserve: the conflict check against
	// blocking bookings and the insert happen under one per-product
	// critical section, so two racing renters cannot both slip through.
	if err := unit.Bookings().Reserve(ctx, request); err != nil {
		return nil, err
	}

	pending := request.PendingEvents()
	request.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	h.notifyOwner(ctx, request, item)

	return &RequestBookingResult{
		BookingID: string(request.ID),
		TotalCost: request.TotalCost.Amount,
		Status:    string(request.Status),
	}, nil
}

// notifyOwner is best-effort: a delivery failure is logged and never turns a
// persisted booking into an error.
func (h *RequestBookingHandler) notifyOwner(ctx context.Context, b *domainbooking.Booking, item *domainproduct.Product) {
	if h.Notifier == nil {
		return
	}
	subject := fmt.Sprintf("New rental request: %s", item.Name)
	body := fmt.Sprintf(
		"A student wants to rent %q.\nDates: %s — %s\nCost: %d %s\n\nReview the request in your pending requests page.",
		item.Name,
		b.Period.Start.Format("2006-01-02"),
		b.Period.End.Format("2006-01-02"),
		b.TotalCost.Amount,
		b.TotalCost.Currency,
	)
	if err := h.Notifier.Notify(ctx, b.OwnerID, subject, body); err != nil && h.Logger != nil {
		h.Logger.Warn("owner notification failed", "booking_id", b.ID, "owner_id", b.OwnerID, "error", err)
	}
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestBookingCommand)(nil)
