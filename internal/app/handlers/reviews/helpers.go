package reviews

import (
	"context"
	"time"

	"campusrent/internal/app/uow"
	domainuser "campusrent/internal/domain/user"
)

type ratingSnapshot struct {
	Average float64
	Count   int
}

// recalculateLandlordRating rebuilds the owner's rating snapshot from every
// review received as landlord. Always a full recomputation: repeated runs
// over the same review set land on the same values, so the snapshot can be
// rebuilt at any time without drift.
func recalculateLandlordRating(ctx context.Context, unit uow.UnitOfWork, landlordID string, now time.Time) (ratingSnapshot, error) {
	all, err := unit.Reviews().ListByLandlord(ctx, landlordID)
	if err != nil {
		return ratingSnapshot{}, err
	}
	var total int
	for _, review := range all {
		total += review.Rating
	}
	snapshot := ratingSnapshot{Count: len(all)}
	if snapshot.Count > 0 {
		snapshot.Average = float64(total) / float64(snapshot.Count)
	}

	landlord, err := unit.Users().ByID(ctx, domainuser.ID(landlordID))
	if err != nil {
		return ratingSnapshot{}, err
	}
	if err := landlord.ApplyRating(snapshot.Average, snapshot.Count, now); err != nil {
		return ratingSnapshot{}, err
	}
	if err := unit.Users().Save(ctx, landlord); err != nil {
		return ratingSnapshot{}, err
	}
	return snapshot, nil
}
