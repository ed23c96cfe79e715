package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// TokenRepo stores refresh token hashes. Raw tokens never reach this
// layer; callers hash with utils.HashRefreshRaw first.
type TokenRepo struct {
	db *gorm.DB
}

// NewTokenRepo returns a new TokenRepo bound to the given database.
func NewTokenRepo(db *gorm.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh persists a hash with its expiry for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, hash string, exp time.Time) error {
	t := model.RefreshToken{UserID: userID, TokenHash: hash, ExpiresAt: exp}
	return r.db.WithContext(ctx).Create(&t).Error
}

// FindUsable returns the token row for a hash if it is neither revoked
// nor expired; otherwise ErrTokenNotFound.
func (r *TokenRepo) FindUsable(ctx context.Context, hash string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	if !t.Usable(time.Now().UTC()) {
		return nil, ErrTokenNotFound
	}
	return &t, nil
}

// Revoke marks a single token hash as revoked. Revoking an unknown or
// already revoked hash returns ErrTokenNotFound so logout can report
// bad tokens.
func (r *TokenRepo) Revoke(ctx context.Context, hash string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser invalidates every live session of a user, used when
// an account is deactivated.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

// DeleteExpired removes rows that can never be used again. Called from
// the maintenance sweep.
func (r *TokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now().UTC().Add(-24*time.Hour)).
		Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}
