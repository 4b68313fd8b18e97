package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must be after start")
)

// DateRange represents a rental period between two calendar days.
// Start and End are dates (UTC midnight); the rental covers Start up to End,
// but for conflict purposes both boundary days count as occupied.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Day truncates a timestamp to its calendar date in UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the number of billable rental days.
func (dr DateRange) Days() int {
	return int(dr.End.Sub(dr.Start).Hours() / 24)
}

// Conflicts reports whether two ranges occupy a common day. The test is
// inclusive on both boundaries: a rental ending on day D still blocks a
// rental starting on day D, so no same-day handoff is possible.
func (dr DateRange) Conflicts(other DateRange) bool {
	return !dr.Start.After(other.End) && !dr.End.Before(other.Start)
}

// ContainsDay reports whether the given date falls inside the inclusive span.
func (dr DateRange) ContainsDay(t time.Time) bool {
	t = Day(t)
	return !t.Before(dr.Start) && !t.After(dr.End)
}

// EndExclusive returns the day after End. Calendar widgets treat the end of
// an event as exclusive, so shading up to EndExclusive marks the last rented
// day as occupied.
func (dr DateRange) EndExclusive() time.Time {
	return dr.End.AddDate(0, 0, 1)
}
