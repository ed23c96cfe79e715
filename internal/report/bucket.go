// Package report turns booking rows into per-period aggregates for the
// admin dashboard. Bucket boundaries are computed in an IANA timezone
// so a "day" means a local calendar day, not a UTC one; time.Date in
// the zone absorbs DST transitions (a bucket may be 23 or 25 hours
// long around a clock change and the math still lines up).
package report

import (
	"fmt"
	"time"
)

// Granularity selects how a date range is cut into buckets.
type Granularity string

const (
	Day     Granularity = "day"
	Week    Granularity = "week"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
	Year    Granularity = "year"
)

// ParseGranularity validates a query-string value.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Day, Week, Month, Quarter, Year:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Bucket is a half-open period [Start, End) with a stable label
// (2026-08-30, 2026-W35, 2026-08, 2026-Q3, 2026).
type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Buckets cuts [from, to) into periods of the given granularity. The
// first bucket is floored to the period boundary containing from, so
// callers always get whole calendar periods. An empty range yields nil.
func Buckets(from, to time.Time, g Granularity, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.UTC
	}
	from = from.In(loc)
	to = to.In(loc)
	if !from.Before(to) {
		return nil
	}
	var out []Bucket
	for start := floor(from, g, loc); start.Before(to); {
		end := next(start, g, loc)
		out = append(out, Bucket{Label: label(start, g), Start: start, End: end})
		start = end
	}
	return out
}

// floor returns the boundary of the period containing t.
func floor(t time.Time, g Granularity, loc *time.Location) time.Time {
	y, m, d := t.Date()
	switch g {
	case Week:
		// Weeks start Monday.
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-back, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Quarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// next returns the start of the period after the one starting at t.
// Construction via time.Date keeps boundaries at local midnight even
// when a DST shift falls inside the period.
func next(t time.Time, g Granularity, loc *time.Location) time.Time {
	y, m, d := t.Date()
	switch g {
	case Week:
		return time.Date(y, m, d+7, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	case Quarter:
		return time.Date(y, m+3, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	}
}

func label(start time.Time, g Granularity) string {
	switch g {
	case Week:
		y, w := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Month:
		return start.Format("2006-01")
	case Quarter:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case Year:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}
