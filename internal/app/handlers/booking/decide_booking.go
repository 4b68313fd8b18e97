package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/outbox"
	"campusrent/internal/app/policies"
	"campusrent/internal/app/uow"
	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
)

const decideBookingKey = "booking.decide"

type Decision string

const (
	DecisionConfirm Decision = "confirm"
	DecisionCancel  Decision = "cancel"
)

// DecideBookingCommand records the owner's verdict on a pending request.
type DecideBookingCommand struct {
	BookingID string
	ActorID   string
	Decision  Decision
}

func (c DecideBookingCommand) Key() string { return decideBookingKey }

func (c DecideBookingCommand) Validate() error {
	switch c.Decision {
	case DecisionConfirm, DecisionCancel:
		return nil
	default:
		return domainbooking.ErrUnknownDecision
	}
}

type DecideBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type DecideBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Notifier   policies.Notifier
	Logger     *slog.Logger
}

func (h *DecideBookingHandler) Handle(ctx context.Context, cmd DecideBookingCommand) (*DecideBookingResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

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

	request, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	if request.OwnerID != cmd.ActorID {
		return nil, domainbooking.ErrNotOwner
	}

	now := time.Now().UTC()
	switch cmd.Decision {
	case DecisionConfirm:
		err = request.Confirm(now)
	case DecisionCancel:
		err = request.Cancel(now)
	}
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, request); err != nil {
		return nil, err
	}

	productName := string(request.ProductID)
	if item, err := unit.Products().ByID(ctx, domainproduct.ID(request.ProductID)); err == nil {
		productName = item.Name
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

	h.notifyRenter(ctx, request, productName, cmd.Decision)

	return &DecideBookingResult{BookingID: string(request.ID), Status: string(request.Status)}, nil
}

func (h *DecideBookingHandler) notifyRenter(ctx context.Context, b *domainbooking.Booking, name string, decision Decision) {
	if h.Notifier == nil {
		return
	}
	var subject, body string
	if decision == DecisionConfirm {
		subject = fmt.Sprintf("Your booking is confirmed: %s", name)
		body = fmt.Sprintf(
			"The owner confirmed your rental of %q.\nDates: %s — %s\nCost: %d %s",
			name,
			b.Period.Start.Format("2006-01-02"),
			b.Period.End.Format("2006-01-02"),
			b.TotalCost.Amount,
			b.TotalCost.Currency,
		)
	} else {
		subject = fmt.Sprintf("Your booking was declined: %s", name)
		body = fmt.Sprintf("Unfortunately the owner declined your rental request for %q.", name)
	}
	if err := h.Notifier.Notify(ctx, b.RenterID, subject, body); err != nil && h.Logger != nil {
		h.Logger.Warn("renter notification failed", "booking_id", b.ID, "renter_id", b.RenterID, "error", err)
	}
}

func (h *DecideBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[DecideBookingCommand, *DecideBookingResult] = (*DecideBookingHandler)(nil)
