package reviews

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/dto"
	"campusrent/internal/app/uow"
	domainuser "campusrent/internal/domain/user"
)

const recomputeRatingKey = "reviews.recompute_rating"

// RecomputeRatingCommand rebuilds a landlord's rating snapshot on demand.
// The snapshot is a cache over the review set, so this is always safe.
type RecomputeRatingCommand struct {
	LandlordID string
}

func (c RecomputeRatingCommand) Key() string { return recomputeRatingKey }

func (c RecomputeRatingCommand) Validate() error {
	if strings.TrimSpace(c.LandlordID) == "" {
		return domainuser.ErrIDRequired
	}
	return nil
}

type RecomputeRatingHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *RecomputeRatingHandler) Handle(ctx context.Context, cmd RecomputeRatingCommand) (dto.LandlordRating, error) {
	if err := cmd.Validate(); err != nil {
		return dto.LandlordRating{}, err
	}

	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.LandlordRating{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.LandlordRating{}, err
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

	snapshot, err := recalculateLandlordRating(ctx, unit, cmd.LandlordID, time.Now().UTC())
	if err != nil {
		return dto.LandlordRating{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.LandlordRating{}, err
		}
		committed = true
	}

	if h.Logger != nil {
		h.Logger.Debug("landlord rating recomputed", "landlord_id", cmd.LandlordID, "rating", snapshot.Average, "count", snapshot.Count)
	}

	return dto.LandlordRating{
		LandlordID:  cmd.LandlordID,
		Rating:      snapshot.Average,
		RatingCount: snapshot.Count,
	}, nil
}

var _ commands.Handler[RecomputeRatingCommand, dto.LandlordRating] = (*RecomputeRatingHandler)(nil)
