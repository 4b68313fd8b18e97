package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"campusrent/internal/domain/booking"
	"campusrent/internal/domain/shared/events"
)

var (
	ErrInvalidRating       = errors.New("reviews: rating must be between 1 and 5")
	ErrAlreadyReviewed     = errors.New("reviews: review already exists for booking")
	ErrNotRenter           = errors.New("reviews: only the renter may review a booking")
	ErrBookingNotCompleted = errors.New("reviews: booking is not completed")
	ErrNotFound            = errors.New("reviews: not found")
)

type ReviewID string

// Review is a renter's one-time rating of a completed rental. LandlordID is
// the product owner receiving the rating; reviews are never edited or
// deleted, they are the source of truth the owner's rating snapshot is
// rebuilt from.
type Review struct {
	ID         ReviewID
	BookingID  booking.BookingID
	ReviewerID string
	LandlordID string
	Rating     int
	Comment    string
	CreatedAt  time.Time
	events.EventRecorder
}

type Repository interface {
	ByBooking(ctx context.Context, bookingID booking.BookingID) (*Review, error)
	ListByLandlord(ctx context.Context, landlordID string) ([]*Review, error)
	Save(ctx context.Context, review *Review) error
}

type SubmitParams struct {
	ID         ReviewID
	BookingID  booking.BookingID
	ReviewerID string
	LandlordID string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

func Submit(params SubmitParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	review := &Review{
		ID:         params.ID,
		BookingID:  params.BookingID,
		ReviewerID: params.ReviewerID,
		LandlordID: params.LandlordID,
		Rating:     params.Rating,
		Comment:    strings.TrimSpace(params.Comment),
		CreatedAt:  params.CreatedAt.UTC(),
	}
	review.Record(ReviewSubmitted{ReviewID: review.ID, BookingID: review.BookingID, LandlordID: review.LandlordID, Rating: review.Rating, At: review.CreatedAt})
	return review, nil
}
