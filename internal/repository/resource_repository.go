package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// ResourceRepo provides persistence for bookable resources.
type ResourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo returns a new ResourceRepo bound to the given database.
func NewResourceRepo(db *gorm.DB) *ResourceRepo { return &ResourceRepo{db: db} }

// Create inserts a resource under a listing.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// GetByID returns a resource by primary key.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (*model.Resource, error) {
	var res model.Resource
	err := r.db.WithContext(ctx).First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByListing returns the resources of a listing, active first.
func (r *ResourceRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.Resource, error) {
	var rs []model.Resource
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("active DESC, name").Find(&rs).Error
	return rs, err
}

// Update saves the mutable resource fields.
func (r *ResourceRepo) Update(ctx context.Context, res *model.Resource) error {
	out := r.db.WithContext(ctx).Model(&model.Resource{}).Where("id = ?", res.ID).
		Updates(map[string]any{
			"name":        res.Name,
			"capacity":    res.Capacity,
			"quantity":    res.Quantity,
			"price_cents": res.PriceCents,
			"active":      res.Active,
		})
	if out.Error != nil {
		return out.Error
	}
	if out.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// Delete removes a resource when no booking ever referenced it;
// otherwise it is deactivated so history stays consistent.
func (r *ResourceRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Booking{}).Where("resource_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			res := tx.Model(&model.Resource{}).Where("id = ?", id).Update("active", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrResourceNotFound
			}
			return nil
		}
		res := tx.Delete(&model.Resource{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrResourceNotFound
		}
		return nil
	})
}
