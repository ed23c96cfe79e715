package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/utils"
)

// UserRepo provides persistence for user accounts.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password and inserts the user. Duplicate emails
// return ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName, role string, bcryptCost int) (uint64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	u := model.User{
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		Active:       true,
	}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return u.ID, nil
}

// GetByEmail returns a user by email, ErrUserNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by primary key with its group preloaded.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Group").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users page by page, optionally filtered by role, newest
// first, along with the unfiltered-page total.
func (r *UserRepo) List(ctx context.Context, role string, page, pageSize int) ([]model.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []model.User
	err := q.Preload("Group").
		Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateRole changes a user's role and group membership. A nil groupID
// clears the membership.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string, groupID *uint64) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"role": role, "group_id": groupID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetActive toggles the active flag. Inactive users cannot log in or
// refresh sessions.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
