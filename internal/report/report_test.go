package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averden/hospitality-booking/internal/model"
)

func TestAggregate(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)
	buckets := Buckets(from, to, Day, time.UTC)
	require.Len(t, buckets, 3)

	rows := []BookingRow{
		{CheckIn: from, Status: model.BookingConfirmed, TotalAmountCents: 10_000},
		{CheckIn: from, Status: model.BookingCancelled, TotalAmountCents: 5_000},
		{CheckIn: from.AddDate(0, 0, 1), Status: model.BookingConfirmed, TotalAmountCents: 7_500},
		{CheckIn: from.AddDate(0, 0, 1), Status: model.BookingPending, TotalAmountCents: 2_000},
		{CheckIn: from.AddDate(0, 0, 2), Status: model.BookingExpired},
		// Outside the range: dropped.
		{CheckIn: to, Status: model.BookingConfirmed, TotalAmountCents: 99_999},
	}

	lines := Aggregate(rows, buckets)
	require.Len(t, lines, 3)

	assert.Equal(t, 2, lines[0].Total)
	assert.Equal(t, 1, lines[0].Confirmed)
	assert.Equal(t, 1, lines[0].Cancelled)
	assert.Equal(t, uint64(10_000), lines[0].RevenueCents) // cancelled not counted

	assert.Equal(t, 2, lines[1].Total)
	assert.Equal(t, 1, lines[1].Pending)
	assert.Equal(t, uint64(7_500), lines[1].RevenueCents)

	assert.Equal(t, 1, lines[2].Total)
	assert.Equal(t, 1, lines[2].Expired)
	assert.Equal(t, uint64(0), lines[2].RevenueCents)
}

func TestAggregateTimeWithinBucket(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	buckets := Buckets(
		time.Date(2026, 8, 1, 0, 0, 0, 0, ny),
		time.Date(2026, 8, 2, 0, 0, 0, 0, ny),
		Day, ny)
	require.Len(t, buckets, 1)

	// Check-in stored at midnight UTC lands on Jul 31 20:00 New York:
	// a UTC-keyed row before local midnight stays out of the bucket.
	utcMidnight := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	lines := Aggregate([]BookingRow{{CheckIn: utcMidnight, Status: model.BookingConfirmed}}, buckets)
	assert.Equal(t, 0, lines[0].Total)

	// InZone re-keys the calendar date into the report zone first.
	lines = Aggregate([]BookingRow{{CheckIn: InZone(utcMidnight, ny), Status: model.BookingConfirmed}}, buckets)
	assert.Equal(t, 1, lines[0].Total)
}

func TestInZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	d := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	got := InZone(d, ny)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, ny), got)
	assert.Equal(t, d, InZone(d, nil))
}

func TestAggregateNoBuckets(t *testing.T) {
	assert.Empty(t, Aggregate([]BookingRow{{Status: model.BookingPending}}, nil))
}
