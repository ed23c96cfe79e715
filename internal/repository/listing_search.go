package repository

import (
	"context"
	"strings"
	"time"

	"github.com/averden/hospitality-booking/internal/model"
)

// ListingSearchQuery defines filters and pagination for the public
// listing search. Zero values mean "not filtered". When both CheckIn
// and CheckOut are set the search only returns listings with at least
// one resource that can still take the stay.
type ListingSearchQuery struct {
	Term        string
	LocationID  uint64
	Category    string
	FacilityIDs []uint64
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      uint32
	MinPrice    uint32
	MaxPrice    uint32
	Page        int
	PageSize    int
}

// Search runs an availability-aware listing search over published
// listings and returns the page plus the total match count.
//
// The SQL availability filter sums the units of every booking that
// overlaps the requested range, which over-counts when bookings do not
// overlap each other. That errs on the side of hiding a listing, never
// of offering one that is full; the per-day availability endpoint and
// the transactional check at booking time are exact.
func (r *ListingRepo) Search(ctx context.Context, q ListingSearchQuery) ([]model.Listing, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("listings.status = ?", model.ListingPublished)

	if q.Term != "" {
		term := "%" + strings.ToLower(q.Term) + "%"
		db = db.Where("LOWER(listings.name) LIKE ? OR LOWER(listings.description) LIKE ?", term, term)
	}
	if q.LocationID != 0 {
		db = db.Where("listings.location_id = ?", q.LocationID)
	}
	if q.Category != "" {
		db = db.Where("listings.category = ?", strings.ToUpper(q.Category))
	}
	if q.MinPrice > 0 {
		db = db.Where("listings.base_price_cents >= ?", q.MinPrice)
	}
	if q.MaxPrice > 0 {
		db = db.Where("listings.base_price_cents <= ?", q.MaxPrice)
	}
	for _, fid := range q.FacilityIDs {
		// One EXISTS per facility: the listing must carry all of them.
		db = db.Where(
			"EXISTS (SELECT 1 FROM listing_facilities lf WHERE lf.listing_id = listings.id AND lf.facility_id = ?)",
			fid)
	}

	resourceCond := "resources.listing_id = listings.id AND resources.active = 1"
	resourceArgs := []any{}
	if q.Guests > 0 {
		resourceCond += " AND resources.capacity >= ?"
		resourceArgs = append(resourceArgs, q.Guests)
	}
	if !q.CheckIn.IsZero() && !q.CheckOut.IsZero() {
		resourceCond += ` AND resources.quantity > (
			SELECT COALESCE(SUM(b.units), 0) FROM bookings b
			WHERE b.resource_id = resources.id
			  AND b.status IN (?, ?)
			  AND b.check_in < ? AND b.check_out > ?)`
		resourceArgs = append(resourceArgs,
			model.BookingPending, model.BookingConfirmed, q.CheckOut, q.CheckIn)
	}
	db = db.Where("EXISTS (SELECT 1 FROM resources WHERE "+resourceCond+")", resourceArgs...)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []model.Listing
	err := db.Preload("Location").Preload("Facilities").
		Order("listings.name").
		Limit(q.PageSize).Offset((q.Page - 1) * q.PageSize).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}
