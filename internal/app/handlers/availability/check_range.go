package availability

import (
	"context"
	"strings"
	"time"

	"campusrent/internal/app/handlers/support"
	"campusrent/internal/app/queries"
	"campusrent/internal/app/uow"
	domainavailability "campusrent/internal/domain/availability"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
)

const checkRangeKey = "availability.check"

// CheckRangeQuery answers whether a candidate period collides with any
// blocking booking on the product. Advisory only: the answer can be stale
// by the time a booking is actually reserved.
type CheckRangeQuery struct {
	ProductID string
	StartDate time.Time
	EndDate   time.Time
}

func (q CheckRangeQuery) Key() string { return checkRangeKey }

type CheckRangeResult struct {
	ProductID string `json:"product_id"`
	Conflict  bool   `json:"conflict"`
}

type CheckRangeHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *CheckRangeHandler) Handle(ctx context.Context, q CheckRangeQuery) (CheckRangeResult, error) {
	productID := strings.TrimSpace(q.ProductID)
	if productID == "" {
		return CheckRangeResult{}, domainproduct.ErrNotFound
	}
	candidate, err := domainrange.New(q.StartDate, q.EndDate)
	if err != nil {
		return CheckRangeResult{}, err
	}

	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return CheckRangeResult{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	spans, err := blockingSpans(execCtx, unit, domainproduct.ID(productID))
	if err != nil {
		return CheckRangeResult{}, err
	}

	return CheckRangeResult{
		ProductID: productID,
		Conflict:  domainavailability.HasConflict(spans, candidate),
	}, nil
}

var _ queries.Handler[CheckRangeQuery, CheckRangeResult] = (*CheckRangeHandler)(nil)
