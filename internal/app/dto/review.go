package dto

import (
	"time"

	domainreviews "campusrent/internal/domain/reviews"
)

// Review represents a public review payload.
type Review struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ReviewerID string    `json:"reviewer_id"`
	LandlordID string    `json:"landlord_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LandlordRating is the aggregated snapshot returned after a recompute.
type LandlordRating struct {
	LandlordID  string  `json:"landlord_id"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

// MapReview builds a DTO from a domain review.
func MapReview(review *domainreviews.Review) Review {
	if review == nil {
		return Review{}
	}
	return Review{
		ID:         string(review.ID),
		BookingID:  string(review.BookingID),
		ReviewerID: review.ReviewerID,
		LandlordID: review.LandlordID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}
