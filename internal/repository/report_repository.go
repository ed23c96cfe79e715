package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/report"
)

// ReportRepo loads the booking rows the report aggregator consumes.
// Bucketing happens in Go (internal/report) because bucket boundaries
// depend on the location's timezone, which MySQL date functions would
// get wrong for DST zones.
type ReportRepo struct {
	db *gorm.DB
}

// NewReportRepo returns a new ReportRepo bound to the given database.
func NewReportRepo(db *gorm.DB) *ReportRepo { return &ReportRepo{db: db} }

// BookingRows returns check-in/status/amount tuples for bookings with
// a check-in inside [from, to), optionally restricted to a location
// and, for scoped staff, to a group's listings. The range is widened a
// day on both sides by the caller when re-keying into a non-UTC zone.
func (r *ReportRepo) BookingRows(ctx context.Context, from, to time.Time, locationID uint64, groupID *uint64) ([]report.BookingRow, error) {
	db := r.db.WithContext(ctx).Model(&model.Booking{}).
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("bookings.check_in >= ? AND bookings.check_in < ?", from, to)
	if locationID != 0 {
		db = db.Where("listings.location_id = ?", locationID)
	}
	if groupID != nil {
		db = db.Where("listings.group_id = ?", *groupID)
	}
	var rows []struct {
		CheckIn          time.Time
		Status           string
		TotalAmountCents uint32
	}
	err := db.Select("bookings.check_in, bookings.status, bookings.total_amount_cents").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]report.BookingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.BookingRow{
			CheckIn:          row.CheckIn,
			Status:           row.Status,
			TotalAmountCents: row.TotalAmountCents,
		})
	}
	return out, nil
}
