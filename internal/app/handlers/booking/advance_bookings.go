package booking

import (
	"context"
	"log/slog"
	"time"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/outbox"
	"campusrent/internal/app/uow"
	domainbooking "campusrent/internal/domain/booking"
	domainrange "campusrent/internal/domain/shared/daterange"
)

const advanceBookingsKey = "booking.advance"

// AdvanceBookingsCommand runs the time-driven transitions: confirmed
// bookings whose start date has arrived become active, active bookings past
// their end date become completed. Invoked by the periodic scheduler; safe
// to re-run because already-advanced bookings no longer match.
type AdvanceBookingsCommand struct {
	Now time.Time
}

func (c AdvanceBookingsCommand) Key() string { return advanceBookingsKey }

type AdvanceBookingsResult struct {
	Activated int `json:"activated"`
	Completed int `json:"completed"`
}

type AdvanceBookingsHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Logger     *slog.Logger
}

func (h *AdvanceBookingsHandler) Handle(ctx context.Context, cmd AdvanceBookingsCommand) (*AdvanceBookingsResult, error) {
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

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	today := domainrange.Day(now)

	result := &AdvanceBookingsResult{}

	confirmed, err := unit.Bookings().ListByStatus(ctx, domainbooking.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	for _, b := range confirmed {
		if b.Period.Start.After(today) {
			continue
		}
		if err := h.transition(ctx, unit, b, (*domainbooking.Booking).Activate, now); err != nil {
			return nil, err
		}
		result.Activated++
	}

	active, err := unit.Bookings().ListByStatus(ctx, domainbooking.StatusActive)
	if err != nil {
		return nil, err
	}
	for _, b := range active {
		if b.Period.End.After(today) {
			continue
		}
		if err := h.transition(ctx, unit, b, (*domainbooking.Booking).Complete, now); err != nil {
			return nil, err
		}
		result.Completed++
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	if h.Logger != nil && (result.Activated > 0 || result.Completed > 0) {
		h.Logger.Info("bookings advanced", "activated", result.Activated, "completed", result.Completed)
	}

	return result, nil
}

func (h *AdvanceBookingsHandler) transition(
	ctx context.Context,
	unit uow.UnitOfWork,
	b *domainbooking.Booking,
	move func(*domainbooking.Booking, time.Time) error,
	now time.Time,
) error {
	if err := move(b, now); err != nil {
		return err
	}
	if err := unit.Bookings().Save(ctx, b); err != nil {
		return err
	}
	pending := b.PendingEvents()
	b.ClearEvents()
	return outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending)
}

func (h *AdvanceBookingsHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[AdvanceBookingsCommand, *AdvanceBookingsResult] = (*AdvanceBookingsHandler)(nil)
