package availability

import (
	"context"
	"strings"

	"campusrent/internal/app/dto"
	"campusrent/internal/app/handlers/support"
	"campusrent/internal/app/queries"
	"campusrent/internal/app/uow"
	domainavailability "campusrent/internal/domain/availability"
	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
)

const getCalendarKey = "availability.calendar"

// GetCalendarQuery projects a product's blocking bookings into occupied
// calendar intervals. Read-only; performs no validation beyond the lookup.
type GetCalendarQuery struct {
	ProductID string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	productID := strings.TrimSpace(q.ProductID)
	if productID == "" {
		return dto.Calendar{}, domainproduct.ErrNotFound
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Calendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	spans, err := blockingSpans(execCtx, unit, domainproduct.ID(productID))
	if err != nil {
		return dto.Calendar{}, err
	}

	intervals := domainavailability.OccupiedIntervals(spans)
	return dto.MapCalendar(productID, intervals), nil
}

// blockingSpans collects the periods of every booking that occupies the
// product's calendar (confirmed or active).
func blockingSpans(ctx context.Context, unit uow.UnitOfWork, id domainproduct.ID) ([]domainrange.DateRange, error) {
	blocking, err := unit.Bookings().ListByProduct(ctx, id, domainbooking.BlockingStatuses()...)
	if err != nil {
		return nil, err
	}
	spans := make([]domainrange.DateRange, 0, len(blocking))
	for _, b := range blocking {
		spans = append(spans, b.Period)
	}
	return spans, nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
