package model

import "time"

// Rule kinds understood by the booking flow. Values are integers whose
// unit depends on the kind (nights, hours or guests).
const (
	RuleMinStayNights     = "MIN_STAY_NIGHTS"
	RuleMaxStayNights     = "MAX_STAY_NIGHTS"
	RuleMinLeadHours      = "MIN_LEAD_HOURS"
	RuleCancelCutoffHours = "CANCEL_CUTOFF_HOURS"
	RuleMaxPartySize      = "MAX_PARTY_SIZE"
)

// Rule is a per-listing booking constraint checked during quoting,
// creation and cancellation. A listing carries at most one rule of
// each kind.
type Rule struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ListingID uint64    `gorm:"index:idx_listing_rule_kind,unique;not null" json:"listing_id"`
	Kind      string    `gorm:"size:32;index:idx_listing_rule_kind,unique;not null" json:"kind"`
	Value     int       `gorm:"not null" json:"value"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRuleKind reports whether s is a rule kind the booking flow
// understands.
func ValidRuleKind(s string) bool {
	switch s {
	case RuleMinStayNights, RuleMaxStayNights, RuleMinLeadHours,
		RuleCancelCutoffHours, RuleMaxPartySize:
		return true
	}
	return false
}
