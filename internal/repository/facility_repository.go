package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// FacilityRepo provides persistence for facility tags.
type FacilityRepo struct {
	db *gorm.DB
}

// NewFacilityRepo returns a new FacilityRepo bound to the given database.
func NewFacilityRepo(db *gorm.DB) *FacilityRepo { return &FacilityRepo{db: db} }

// Create inserts a facility. Duplicate names return ErrNameExists.
func (r *FacilityRepo) Create(ctx context.Context, f *model.Facility) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return ErrNameExists
		}
		return err
	}
	return nil
}

// GetByID returns a facility by primary key.
func (r *FacilityRepo) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	var f model.Facility
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all facilities ordered by name.
func (r *FacilityRepo) List(ctx context.Context) ([]model.Facility, error) {
	var fs []model.Facility
	err := r.db.WithContext(ctx).Order("name").Find(&fs).Error
	return fs, err
}

// Update saves name and icon changes.
func (r *FacilityRepo) Update(ctx context.Context, f *model.Facility) error {
	res := r.db.WithContext(ctx).Model(&model.Facility{}).Where("id = ?", f.ID).
		Updates(map[string]any{"name": f.Name, "icon": f.Icon})
	if res.Error != nil {
		if strings.Contains(res.Error.Error(), "Duplicate entry") {
			return ErrNameExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

// Delete removes a facility together with its join rows.
func (r *FacilityRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM listing_facilities WHERE facility_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Facility{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFacilityNotFound
		}
		return nil
	})
}
