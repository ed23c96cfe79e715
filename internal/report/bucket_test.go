package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGranularity(t *testing.T) {
	for _, s := range []string{"day", "week", "month", "quarter", "year"} {
		g, err := ParseGranularity(s)
		require.NoError(t, err)
		assert.Equal(t, Granularity(s), g)
	}
	_, err := ParseGranularity("fortnight")
	assert.Error(t, err)
}

func TestBucketsDay(t *testing.T) {
	from := time.Date(2026, 8, 28, 13, 45, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	bs := Buckets(from, to, Day, time.UTC)
	require.Len(t, bs, 3)
	assert.Equal(t, "2026-08-28", bs[0].Label)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), bs[0].Start)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), bs[0].End)
	assert.Equal(t, "2026-08-30", bs[2].Label)
}

func TestBucketsWeekStartsMonday(t *testing.T) {
	// 2026-08-30 is a Sunday; its week starts Monday the 24th.
	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	bs := Buckets(from, to, Week, time.UTC)
	require.Len(t, bs, 3)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), bs[0].Start)
	assert.Equal(t, time.Monday, bs[0].Start.Weekday())
	assert.Equal(t, "2026-W35", bs[0].Label)
	assert.Equal(t, bs[0].End, bs[1].Start)
}

func TestBucketsQuarter(t *testing.T) {
	from := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	bs := Buckets(from, to, Quarter, time.UTC)
	require.Len(t, bs, 4)
	assert.Equal(t, "2026-Q1", bs[0].Label)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bs[0].Start)
	assert.Equal(t, "2026-Q4", bs[3].Label)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), bs[3].End)
}

func TestBucketsDaySpansDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// US spring-forward: 2026-03-08 is 23 hours long in New York.
	from := time.Date(2026, 3, 7, 0, 0, 0, 0, ny)
	to := time.Date(2026, 3, 10, 0, 0, 0, 0, ny)
	bs := Buckets(from, to, Day, ny)
	require.Len(t, bs, 3)

	short := bs[1]
	assert.Equal(t, "2026-03-08", short.Label)
	assert.Equal(t, 23*time.Hour, short.End.Sub(short.Start))
	// Boundaries stay at local midnight on both sides of the shift.
	assert.Equal(t, 0, short.Start.Hour())
	assert.Equal(t, 0, short.End.Hour())
	assert.Equal(t, bs[0].End, short.Start)
	assert.Equal(t, short.End, bs[2].Start)
}

func TestBucketsMonthAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, ny)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, ny)
	bs := Buckets(from, to, Month, ny)
	require.Len(t, bs, 1)
	assert.Equal(t, "2026-03", bs[0].Label)
	assert.Equal(t, 0, bs[0].End.Hour()) // April 1st local midnight
}

func TestBucketsEmptyRange(t *testing.T) {
	at := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, Buckets(at, at, Day, time.UTC))
	assert.Nil(t, Buckets(at, at.Add(-time.Hour), Day, time.UTC))
}

func TestBucketsNilLocationDefaultsUTC(t *testing.T) {
	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	bs := Buckets(from, from.AddDate(0, 0, 1), Day, nil)
	require.Len(t, bs, 1)
	assert.Equal(t, time.UTC, bs[0].Start.Location())
}
