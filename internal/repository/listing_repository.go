package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// ListingRepo provides persistence for listings and their facility
// associations.
type ListingRepo struct {
	db *gorm.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

// Create inserts a listing. Duplicate slugs return ErrSlugExists.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	if err := r.db.WithContext(ctx).Omit("Facilities", "Resources", "Rules", "Media").Create(l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return ErrSlugExists
		}
		return err
	}
	return nil
}

// GetByID returns a listing by primary key without associations.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	var l model.Listing
	err := r.db.WithContext(ctx).First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetDetail loads a listing with location, facilities, active
// resources, rules and media, by primary key.
func (r *ListingRepo) GetDetail(ctx context.Context, id uint64) (*model.Listing, error) {
	return r.detail(ctx, "id = ?", id)
}

// GetDetailBySlug is GetDetail keyed by slug; used by the public
// listing page.
func (r *ListingRepo) GetDetailBySlug(ctx context.Context, slug string) (*model.Listing, error) {
	return r.detail(ctx, "slug = ?", slug)
}

func (r *ListingRepo) detail(ctx context.Context, cond string, arg any) (*model.Listing, error) {
	var l model.Listing
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Facilities").
		Preload("Resources", "active = ?", true).
		Preload("Rules").
		Preload("Media").
		Where(cond, arg).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByLocation returns published listings at a location with their
// facilities, ordered by name.
func (r *ListingRepo) ListByLocation(ctx context.Context, locationID uint64) ([]model.Listing, error) {
	var ls []model.Listing
	err := r.db.WithContext(ctx).
		Preload("Facilities").
		Where("location_id = ? AND status = ?", locationID, model.ListingPublished).
		Order("name").Find(&ls).Error
	return ls, err
}

// ListAdmin returns listings in any state for the management screens,
// optionally restricted to a group (staff scoping).
func (r *ListingRepo) ListAdmin(ctx context.Context, groupID *uint64, page, pageSize int) ([]model.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Listing{})
	if groupID != nil {
		q = q.Where("group_id = ?", *groupID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ls []model.Listing
	err := q.Preload("Location").
		Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&ls).Error
	if err != nil {
		return nil, 0, err
	}
	return ls, total, nil
}

// Update saves the mutable listing fields.
func (r *ListingRepo) Update(ctx context.Context, l *model.Listing) error {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).Where("id = ?", l.ID).
		Updates(map[string]any{
			"location_id":      l.LocationID,
			"group_id":         l.GroupID,
			"name":             l.Name,
			"slug":             l.Slug,
			"category":         l.Category,
			"description":      l.Description,
			"base_price_cents": l.BasePriceCents,
		})
	if res.Error != nil {
		if strings.Contains(res.Error.Error(), "Duplicate entry") {
			return ErrSlugExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// SetStatus moves a listing through its lifecycle
// (DRAFT/PUBLISHED/ARCHIVED).
func (r *ListingRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// ReplaceFacilities swaps the full facility set of a listing.
func (r *ListingRepo) ReplaceFacilities(ctx context.Context, id uint64, facilityIDs []uint64) error {
	l := model.Listing{ID: id}
	fs := make([]model.Facility, 0, len(facilityIDs))
	for _, fid := range facilityIDs {
		fs = append(fs, model.Facility{ID: fid})
	}
	return r.db.WithContext(ctx).Model(&l).Association("Facilities").Replace(fs)
}
