package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTruncatesToCalendarDay(t *testing.T) {
	start := time.Date(2024, time.January, 10, 15, 30, 45, 0, time.UTC)
	end := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)

	dr, err := New(start, end)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 10), dr.Start)
	assert.Equal(t, date(2024, time.January, 15), dr.End)
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	_, err := New(date(2024, time.January, 15), date(2024, time.January, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(date(2024, time.January, 10), date(2024, time.January, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, date(2024, time.January, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDays(t *testing.T) {
	dr, err := New(date(2024, time.January, 10), date(2024, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, 5, dr.Days())
}

func TestConflictsIsInclusiveOnBoundaries(t *testing.T) {
	existing, err := New(date(2024, time.March, 1), date(2024, time.March, 10))
	require.NoError(t, err)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"identical", date(2024, time.March, 1), date(2024, time.March, 10), true},
		{"contained", date(2024, time.March, 3), date(2024, time.March, 5), true},
		{"overlaps head", date(2024, time.February, 25), date(2024, time.March, 2), true},
		{"overlaps tail", date(2024, time.March, 9), date(2024, time.March, 15), true},
		{"starts on end day", date(2024, time.March, 10), date(2024, time.March, 12), true},
		{"ends on start day", date(2024, time.February, 20), date(2024, time.March, 1), true},
		{"before", date(2024, time.February, 20), date(2024, time.February, 28), false},
		{"after", date(2024, time.March, 11), date(2024, time.March, 20), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate, err := New(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.conflict, existing.Conflicts(candidate))
			assert.Equal(t, tc.conflict, candidate.Conflicts(existing), "conflict test must be commutative")
		})
	}
}

func TestContainsDay(t *testing.T) {
	dr, err := New(date(2024, time.March, 1), date(2024, time.March, 10))
	require.NoError(t, err)

	assert.True(t, dr.ContainsDay(date(2024, time.March, 1)))
	assert.True(t, dr.ContainsDay(date(2024, time.March, 10)))
	assert.True(t, dr.ContainsDay(time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)))
	assert.False(t, dr.ContainsDay(date(2024, time.February, 29)))
	assert.False(t, dr.ContainsDay(date(2024, time.March, 11)))
}

func TestEndExclusive(t *testing.T) {
	dr, err := New(date(2024, time.March, 1), date(2024, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 11), dr.EndExclusive())
}
