package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusrent/internal/domain/shared/daterange"
)

func span(t *testing.T, startDay, endDay int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2024, time.June, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, endDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return dr
}

func TestHasConflict(t *testing.T) {
	existing := []daterange.DateRange{span(t, 1, 5), span(t, 10, 15)}

	assert.True(t, HasConflict(existing, span(t, 3, 8)))
	assert.True(t, HasConflict(existing, span(t, 5, 9)), "boundary day counts as occupied")
	assert.True(t, HasConflict(existing, span(t, 15, 20)))
	assert.False(t, HasConflict(existing, span(t, 6, 9)))
	assert.False(t, HasConflict(nil, span(t, 6, 9)))
}

func TestOccupiedIntervals(t *testing.T) {
	intervals := OccupiedIntervals([]daterange.DateRange{span(t, 1, 5), span(t, 10, 15)})

	require.Len(t, intervals, 2)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), intervals[0].Start)
	assert.Equal(t, time.Date(2024, time.June, 6, 0, 0, 0, 0, time.UTC), intervals[0].EndExclusive, "display end is the day after the last rented day")
	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), intervals[1].EndExclusive)

	assert.Empty(t, OccupiedIntervals(nil))
}
