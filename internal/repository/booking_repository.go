package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/averden/hospitality-booking/internal/availability"
	"github.com/averden/hospitality-booking/internal/model"
)

// BookingRepo provides persistence for bookings. Creation runs inside
// a caller-owned transaction together with the availability check so
// two concurrent requests cannot both take the last unit.
type BookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can run the
// check-then-insert sequence in one transaction.
func (r *BookingRepo) DB() *gorm.DB { return r.db }

// CreateTx inserts a booking using the provided transaction handle.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *gorm.DB, b *model.Booking) error {
	return tx.WithContext(ctx).Omit("User", "Listing", "Resource").Create(b).Error
}

// SpansTx loads the inventory-holding bookings of a resource that
// overlap [from, to), locking the rows FOR UPDATE so the surrounding
// transaction serializes with competing creations.
func (r *BookingRepo) SpansTx(ctx context.Context, tx *gorm.DB, resourceID uint64, from, to time.Time) ([]availability.Span, error) {
	return spans(tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), resourceID, from, to)
}

// Spans is the non-locking variant used by the public availability
// endpoint.
func (r *BookingRepo) Spans(ctx context.Context, resourceID uint64, from, to time.Time) ([]availability.Span, error) {
	return spans(r.db.WithContext(ctx), resourceID, from, to)
}

func spans(db *gorm.DB, resourceID uint64, from, to time.Time) ([]availability.Span, error) {
	var rows []model.Booking
	err := db.
		Select("check_in", "check_out", "units").
		Where("resource_id = ? AND status IN (?, ?) AND check_in < ? AND check_out > ?",
			resourceID, model.BookingPending, model.BookingConfirmed, to, from).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]availability.Span, 0, len(rows))
	for _, b := range rows {
		out = append(out, availability.Span{Start: b.CheckIn, End: b.CheckOut, Units: b.Units})
	}
	return out, nil
}

// GetByID returns a booking with listing, resource and user loaded.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Listing").Preload("Listing.Location").
		Preload("Resource").Preload("User").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetForUser returns a booking only when it belongs to the given user.
func (r *BookingRepo) GetForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bs []model.Booking
	err := q.Preload("Listing").Preload("Resource").
		Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&bs).Error
	if err != nil {
		return nil, 0, err
	}
	return bs, total, nil
}

// BookingAdminQuery filters the management booking list. GroupID is
// set for staff whose visibility is scoped to their group's listings.
type BookingAdminQuery struct {
	Status     string
	ListingID  uint64
	LocationID uint64
	GroupID    *uint64
	From       time.Time
	To         time.Time
	Page       int
	PageSize   int
}

// ListAdmin returns bookings matching the filters, newest first.
func (r *BookingRepo) ListAdmin(ctx context.Context, q BookingAdminQuery) ([]model.Booking, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Booking{}).
		Joins("JOIN listings ON listings.id = bookings.listing_id")
	if q.Status != "" {
		db = db.Where("bookings.status = ?", q.Status)
	}
	if q.ListingID != 0 {
		db = db.Where("bookings.listing_id = ?", q.ListingID)
	}
	if q.LocationID != 0 {
		db = db.Where("listings.location_id = ?", q.LocationID)
	}
	if q.GroupID != nil {
		db = db.Where("listings.group_id = ?", *q.GroupID)
	}
	if !q.From.IsZero() {
		db = db.Where("bookings.check_in >= ?", q.From)
	}
	if !q.To.IsZero() {
		db = db.Where("bookings.check_in < ?", q.To)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bs []model.Booking
	err := db.Preload("Listing").Preload("Resource").Preload("User").
		Order("bookings.id DESC").
		Limit(q.PageSize).Offset((q.Page - 1) * q.PageSize).
		Find(&bs).Error
	if err != nil {
		return nil, 0, err
	}
	return bs, total, nil
}

// UpdateStatus moves a booking from one of the expected states to the
// target state. ErrBookingNotFound means the row is missing or was not
// in an expected state anymore.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from []string, to string) error {
	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ExpireStale flips PENDING bookings whose hold has lapsed to EXPIRED
// and returns how many rows changed. Called from the periodic sweep.
func (r *BookingRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ? AND hold_expires_at IS NOT NULL AND hold_expires_at < ?",
			model.BookingPending, now).
		Update("status", model.BookingExpired)
	return res.RowsAffected, res.Error
}
