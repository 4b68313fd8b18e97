package reviews

import (
	"time"

	"campusrent/internal/domain/booking"
)

type ReviewSubmitted struct {
	ReviewID   ReviewID
	BookingID  booking.BookingID
	LandlordID string
	Rating     int
	At         time.Time
}

func (e ReviewSubmitted) EventName() string     { return "review.submitted" }
func (e ReviewSubmitted) AggregateID() string   { return string(e.ReviewID) }
func (e ReviewSubmitted) OccurredAt() time.Time { return e.At }

type LandlordRatingUpdated struct {
	LandlordID  string
	Rating      float64
	RatingCount int
	At          time.Time
}

func (e LandlordRatingUpdated) EventName() string     { return "review.rating_updated" }
func (e LandlordRatingUpdated) AggregateID() string   { return e.LandlordID }
func (e LandlordRatingUpdated) OccurredAt() time.Time { return e.At }
