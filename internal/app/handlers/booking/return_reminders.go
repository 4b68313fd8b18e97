package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/policies"
	"campusrent/internal/app/uow"
	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
)

const returnRemindersKey = "booking.return_reminders"

// SendReturnRemindersCommand mails renters whose active rental ends
// tomorrow. Driven by the same periodic scheduler as AdvanceBookings; each
// booking is reminded at most once, so the tick interval never multiplies
// the mails.
type SendReturnRemindersCommand struct {
	Now time.Time
}

func (c SendReturnRemindersCommand) Key() string { return returnRemindersKey }

type SendReturnRemindersResult struct {
	Reminded int `json:"reminded"`
}

type SendReturnRemindersHandler struct {
	UoWFactory uow.UoWFactory
	Notifier   policies.Notifier
	Logger     *slog.Logger
}

func (h *SendReturnRemindersHandler) Handle(ctx context.Context, cmd SendReturnRemindersCommand) (*SendReturnRemindersResult, error) {
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
	tomorrow := domainrange.Day(now).AddDate(0, 0, 1)

	active, err := unit.Bookings().ListByStatus(ctx, domainbooking.StatusActive)
	if err != nil {
		return nil, err
	}

	result := &SendReturnRemindersResult{}
	for _, b := range active {
		if !b.Period.End.Equal(tomorrow) {
			continue
		}
		if !b.RemindedAt.IsZero() {
			continue
		}
		name := string(b.ProductID)
		ownerContact := b.OwnerID
		if item, err := unit.Products().ByID(ctx, domainproduct.ID(b.ProductID)); err == nil {
			name = item.Name
			ownerContact = item.OwnerID
		}
		subject := fmt.Sprintf("Reminder: return %s tomorrow", name)
		body := fmt.Sprintf(
			"Your rental of %q ends tomorrow, %s.\nPlease return the item on time to avoid penalties.\nQuestions? Contact the owner: %s",
			name,
			b.Period.End.Format("2006-01-02"),
			ownerContact,
		)
		if h.Notifier != nil {
			if err := h.Notifier.Notify(ctx, b.RenterID, subject, body); err != nil {
				// Delivery failed: leave the booking unmarked so the next
				// sweep retries it.
				if h.Logger != nil {
					h.Logger.Warn("return reminder failed", "booking_id", b.ID, "renter_id", b.RenterID, "error", err)
				}
				continue
			}
		}
		b.MarkReminded(now)
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return nil, err
		}
		result.Reminded++
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	if h.Logger != nil && result.Reminded > 0 {
		h.Logger.Info("return reminders sent", "count", result.Reminded)
	}

	return result, nil
}

var _ commands.Handler[SendReturnRemindersCommand, *SendReturnRemindersResult] = (*SendReturnRemindersHandler)(nil)
