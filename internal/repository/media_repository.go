package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// MediaRepo provides persistence for listing media records. The bytes
// themselves live in object storage; rows here only carry keys and
// metadata.
type MediaRepo struct {
	db *gorm.DB
}

// NewMediaRepo returns a new MediaRepo bound to the given database.
func NewMediaRepo(db *gorm.DB) *MediaRepo { return &MediaRepo{db: db} }

// Create inserts a media record after a successful upload.
func (r *MediaRepo) Create(ctx context.Context, m *model.MediaAsset) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID returns a media record by primary key.
func (r *MediaRepo) GetByID(ctx context.Context, id uint64) (*model.MediaAsset, error) {
	var m model.MediaAsset
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByListing returns the media of a listing in upload order.
func (r *MediaRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.MediaAsset, error) {
	var ms []model.MediaAsset
	err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("id").Find(&ms).Error
	return ms, err
}

// Delete removes a media record. The caller deletes the object from
// storage first so a failed storage delete never orphans the row.
func (r *MediaRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.MediaAsset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}
