package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/model"
)

// RuleRepo provides persistence for per-listing booking rules.
type RuleRepo struct {
	db *gorm.DB
}

// NewRuleRepo returns a new RuleRepo bound to the given database.
func NewRuleRepo(db *gorm.DB) *RuleRepo { return &RuleRepo{db: db} }

// Upsert creates a rule or updates the existing rule of the same kind
// on the listing; a listing carries at most one rule per kind.
func (r *RuleRepo) Upsert(ctx context.Context, rule *model.Rule) error {
	err := r.db.WithContext(ctx).Create(rule).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
		return r.db.WithContext(ctx).Model(&model.Rule{}).
			Where("listing_id = ? AND kind = ?", rule.ListingID, rule.Kind).
			Updates(map[string]any{"value": rule.Value, "note": rule.Note}).Error
	}
	return err
}

// ListByListing returns the rules of a listing keyed by kind.
func (r *RuleRepo) ListByListing(ctx context.Context, listingID uint64) (map[string]model.Rule, error) {
	var rules []model.Rule
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Find(&rules).Error; err != nil {
		return nil, err
	}
	out := make(map[string]model.Rule, len(rules))
	for _, rl := range rules {
		out[rl.Kind] = rl
	}
	return out, nil
}

// Delete removes a single rule.
func (r *RuleRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.Rule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}
