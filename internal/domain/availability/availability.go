package availability

import (
	"time"

	"campusrent/internal/domain/shared/daterange"
)

// HasConflict reports whether the candidate period shares at least one day
// with any of the existing blocking spans. The test is commutative: it does
// not matter which side is the new booking. The result is advisory only up
// to the moment of the actual reservation; the booking repository repeats
// the same check atomically on insert.
func HasConflict(existing []daterange.DateRange, candidate daterange.DateRange) bool {
	for _, span := range existing {
		if span.Conflicts(candidate) {
			return true
		}
	}
	return false
}

// Interval is one occupied stretch of a product's calendar, shaped for
// renderers that treat the end boundary as exclusive.
type Interval struct {
	Start        time.Time
	EndExclusive time.Time
}

// OccupiedIntervals projects blocking booking spans into display intervals,
// one per span. Pure formatting; no validation, no mutation.
func OccupiedIntervals(spans []daterange.DateRange) []Interval {
	out := make([]Interval, 0, len(spans))
	for _, span := range spans {
		out = append(out, Interval{Start: span.Start, EndExclusive: span.EndExclusive()})
	}
	return out
}
