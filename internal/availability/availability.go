// Package availability computes free inventory for a resource over a
// date range. It is pure: repositories load the overlapping booking
// spans and handlers feed them in, which keeps the arithmetic easy to
// test without a database.
package availability

import "time"

// Span is the slice of a booking that matters for inventory math: the
// half-open [Start, End) date range and how many units it holds. Only
// PENDING and CONFIRMED bookings should be passed in.
type Span struct {
	Start time.Time
	End   time.Time
	Units uint32
}

// Day reports the free unit count for a single date. Free can go
// negative when inventory was shrunk after bookings were taken; the
// booking flow treats anything below the requested units as full.
type Day struct {
	Date time.Time `json:"date"`
	Free int64     `json:"free"`
}

// DateOnly truncates t to midnight UTC. Booking check-in/check-out
// values are stored this way, so all comparisons happen on whole days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PerDay returns the free unit count for every day in [from, to).
// A span occupies a day d when span.Start <= d < span.End.
func PerDay(quantity uint32, spans []Span, from, to time.Time) []Day {
	from = DateOnly(from)
	to = DateOnly(to)
	var days []Day
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		var used int64
		for _, s := range spans {
			if !d.Before(DateOnly(s.Start)) && d.Before(DateOnly(s.End)) {
				used += int64(s.Units)
			}
		}
		days = append(days, Day{Date: d, Free: int64(quantity) - used})
	}
	return days
}

// MinFree returns the lowest free count across [from, to). An empty or
// inverted range returns the full quantity.
func MinFree(quantity uint32, spans []Span, from, to time.Time) int64 {
	min := int64(quantity)
	for _, d := range PerDay(quantity, spans, from, to) {
		if d.Free < min {
			min = d.Free
		}
	}
	return min
}

// Fits reports whether units more can be booked on every day of
// [from, to) given the existing spans.
func Fits(quantity uint32, spans []Span, from, to time.Time, units uint32) bool {
	return MinFree(quantity, spans, from, to) >= int64(units)
}
