package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPerDayNoBookings(t *testing.T) {
	days := PerDay(3, nil, day(2026, 7, 1), day(2026, 7, 4))
	require.Len(t, days, 3)
	for _, d := range days {
		assert.Equal(t, int64(3), d.Free)
	}
	assert.Equal(t, day(2026, 7, 1), days[0].Date)
	assert.Equal(t, day(2026, 7, 3), days[2].Date)
}

func TestPerDayHalfOpenCheckout(t *testing.T) {
	// Guest leaves on the 3rd: the checkout day is free again.
	spans := []Span{{Start: day(2026, 7, 1), End: day(2026, 7, 3), Units: 1}}
	days := PerDay(1, spans, day(2026, 7, 1), day(2026, 7, 4))
	require.Len(t, days, 3)
	assert.Equal(t, int64(0), days[0].Free)
	assert.Equal(t, int64(0), days[1].Free)
	assert.Equal(t, int64(1), days[2].Free)
}

func TestPerDayOverlappingSpansStack(t *testing.T) {
	spans := []Span{
		{Start: day(2026, 7, 1), End: day(2026, 7, 5), Units: 2},
		{Start: day(2026, 7, 3), End: day(2026, 7, 6), Units: 1},
	}
	days := PerDay(4, spans, day(2026, 7, 2), day(2026, 7, 6))
	require.Len(t, days, 4)
	assert.Equal(t, int64(2), days[0].Free) // 2nd: only first span
	assert.Equal(t, int64(1), days[1].Free) // 3rd: both
	assert.Equal(t, int64(1), days[2].Free) // 4th: both
	assert.Equal(t, int64(3), days[3].Free) // 5th: only second span
}

func TestPerDayIgnoresTimeOfDay(t *testing.T) {
	spans := []Span{{
		Start: time.Date(2026, 7, 1, 15, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 7, 2, 11, 0, 0, 0, time.UTC),
		Units: 1,
	}}
	days := PerDay(1, spans, day(2026, 7, 1), day(2026, 7, 2))
	require.Len(t, days, 1)
	assert.Equal(t, int64(0), days[0].Free)
}

func TestMinFreeEmptyRange(t *testing.T) {
	assert.Equal(t, int64(5), MinFree(5, nil, day(2026, 7, 3), day(2026, 7, 3)))
}

func TestMinFreeGoesNegativeWhenOverbooked(t *testing.T) {
	// Quantity reduced to 1 after two units were already booked.
	spans := []Span{{Start: day(2026, 7, 1), End: day(2026, 7, 2), Units: 2}}
	assert.Equal(t, int64(-1), MinFree(1, spans, day(2026, 7, 1), day(2026, 7, 2)))
}

func TestFits(t *testing.T) {
	spans := []Span{{Start: day(2026, 7, 1), End: day(2026, 7, 3), Units: 1}}
	assert.True(t, Fits(2, spans, day(2026, 7, 1), day(2026, 7, 3), 1))
	assert.False(t, Fits(2, spans, day(2026, 7, 1), day(2026, 7, 3), 2))
	// Back-to-back with the existing checkout is fine.
	assert.True(t, Fits(2, spans, day(2026, 7, 3), day(2026, 7, 5), 2))
}
