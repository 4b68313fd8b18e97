package reviews

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/dto"
	"campusrent/internal/app/uow"
	domainbooking "campusrent/internal/domain/booking"
	domainreviews "campusrent/internal/domain/reviews"
)

const submitReviewKey = "reviews.submit"

// SubmitReviewCommand creates the single review a renter may leave on a
// completed booking, then refreshes the landlord's rating snapshot.
type SubmitReviewCommand struct {
	BookingID  string
	ReviewerID string
	Rating     int
	Comment    string
	Now        time.Time
}

func (c SubmitReviewCommand) Key() string { return submitReviewKey }

type SubmitReviewHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (dto.Review, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.Review{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.Review{}, err
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
		now = time.Now().UTC()
	}

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return dto.Review{}, err
	}
	if b.RenterID != cmd.ReviewerID {
		return dto.Review{}, domainreviews.ErrNotRenter
	}
	if b.Status != domainbooking.StatusCompleted {
		return dto.Review{}, domainreviews.ErrBookingNotCompleted
	}

	if existing, err := unit.Reviews().ByBooking(ctx, b.ID); err == nil && existing != nil {
		return dto.Review{}, domainreviews.ErrAlreadyReviewed
	} else if err != nil && !errors.Is(err, domainreviews.ErrNotFound) {
		return dto.Review{}, err
	}

	review, err := domainreviews.Submit(domainreviews.SubmitParams{
		ID:         domainreviews.ReviewID(newReviewID()),
		BookingID:  b.ID,
		ReviewerID: cmd.ReviewerID,
		LandlordID: b.OwnerID,
		Rating:     cmd.Rating,
		Comment:    cmd.Comment,
		CreatedAt:  now,
	})
	if err != nil {
		return dto.Review{}, err
	}
	if err := unit.Reviews().Save(ctx, review); err != nil {
		return dto.Review{}, err
	}

	if _, err := recalculateLandlordRating(ctx, unit, b.OwnerID, now); err != nil {
		return dto.Review{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.Review{}, err
		}
		committed = true
	}

	if h.Logger != nil {
		h.Logger.Info("review submitted", "booking_id", b.ID, "landlord_id", b.OwnerID, "reviewer_id", cmd.ReviewerID, "rating", cmd.Rating)
	}

	return dto.MapReview(review), nil
}

func newReviewID() string {
	return uuid.NewString()
}

var _ commands.Handler[SubmitReviewCommand, dto.Review] = (*SubmitReviewHandler)(nil)
