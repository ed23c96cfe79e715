package report

import (
	"time"

	"github.com/averden/hospitality-booking/internal/model"
)

// BookingRow is the slice of a booking the aggregator needs. Rows are
// attributed to buckets by check-in date.
type BookingRow struct {
	CheckIn          time.Time
	Status           string
	TotalAmountCents uint32
}

// Line is one bucket of the report. RevenueCents counts confirmed
// bookings only; the status counts cover everything that fell in the
// bucket.
type Line struct {
	Bucket
	Total        int    `json:"total"`
	Confirmed    int    `json:"confirmed"`
	Pending      int    `json:"pending"`
	Cancelled    int    `json:"cancelled"`
	Expired      int    `json:"expired"`
	RevenueCents uint64 `json:"revenue_cents"`
}

// Aggregate distributes rows over buckets. Rows outside every bucket
// (check-in before the floored range start or at/after the range end)
// are dropped. Buckets are assumed sorted, as Buckets returns them.
func Aggregate(rows []BookingRow, buckets []Bucket) []Line {
	lines := make([]Line, len(buckets))
	for i, b := range buckets {
		lines[i].Bucket = b
	}
	for _, r := range rows {
		i := locate(buckets, r.CheckIn)
		if i < 0 {
			continue
		}
		l := &lines[i]
		l.Total++
		switch r.Status {
		case model.BookingConfirmed:
			l.Confirmed++
			l.RevenueCents += uint64(r.TotalAmountCents)
		case model.BookingPending:
			l.Pending++
		case model.BookingCancelled:
			l.Cancelled++
		case model.BookingExpired:
			l.Expired++
		}
	}
	return lines
}

// InZone re-keys a date stored at midnight UTC to the same calendar
// date at midnight in loc. Check-in values are date-keyed UTC rows;
// without this shift a report in a western zone would pull every
// booking into the previous local day.
func InZone(dateUTC time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return dateUTC
	}
	y, m, d := dateUTC.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// locate finds the bucket whose [Start, End) contains t via binary
// search over the sorted bucket starts.
func locate(buckets []Bucket, t time.Time) int {
	lo, hi := 0, len(buckets)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		b := buckets[mid]
		switch {
		case t.Before(b.Start):
			hi = mid - 1
		case !t.Before(b.End):
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
