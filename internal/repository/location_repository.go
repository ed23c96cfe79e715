package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// LocationRepo provides persistence for locations.
type LocationRepo struct {
	db *gorm.DB
}

// NewLocationRepo returns a new LocationRepo bound to the given database.
func NewLocationRepo(db *gorm.DB) *LocationRepo { return &LocationRepo{db: db} }

// Create inserts a location.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// GetByID returns a location by primary key.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all locations ordered by name.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	var locs []model.Location
	err := r.db.WithContext(ctx).Order("name").Find(&locs).Error
	return locs, err
}

// Update saves all mutable fields of a location.
func (r *LocationRepo) Update(ctx context.Context, l *model.Location) error {
	res := r.db.WithContext(ctx).Model(&model.Location{}).Where("id = ?", l.ID).
		Updates(map[string]any{
			"name":      l.Name,
			"region":    l.Region,
			"timezone":  l.Timezone,
			"latitude":  l.Latitude,
			"longitude": l.Longitude,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// Delete removes a location. It refuses while listings still reference
// it so the foreign keys stay intact; the error carries the count.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("location_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrLocationInUse
	}
	res := r.db.WithContext(ctx).Delete(&model.Location{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}
