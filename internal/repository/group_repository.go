package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// GroupRepo provides persistence for staff groups.
type GroupRepo struct {
	db *gorm.DB
}

// NewGroupRepo returns a new GroupRepo bound to the given database.
func NewGroupRepo(db *gorm.DB) *GroupRepo { return &GroupRepo{db: db} }

// Create inserts a group. Duplicate names return ErrNameExists.
func (r *GroupRepo) Create(ctx context.Context, g *model.Group) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return ErrNameExists
		}
		return err
	}
	return nil
}

// GetByID returns a group by primary key.
func (r *GroupRepo) GetByID(ctx context.Context, id uint64) (*model.Group, error) {
	var g model.Group
	err := r.db.WithContext(ctx).First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all groups ordered by name.
func (r *GroupRepo) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).Order("name").Find(&groups).Error
	return groups, err
}

// Update saves name and description changes.
func (r *GroupRepo) Update(ctx context.Context, g *model.Group) error {
	res := r.db.WithContext(ctx).Model(&model.Group{}).Where("id = ?", g.ID).
		Updates(map[string]any{"name": g.Name, "description": g.Description})
	if res.Error != nil {
		if strings.Contains(res.Error.Error(), "Duplicate entry") {
			return ErrNameExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// Delete removes a group and detaches its members and listings.
func (r *GroupRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Listing{}).Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGroupNotFound
		}
		return nil
	})
}

// Members returns the users assigned to a group.
func (r *GroupRepo) Members(ctx context.Context, id uint64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("group_id = ?", id).Order("id").Find(&users).Error
	return users, err
}
