package model

import "time"

// Listing categories.
const (
	CategoryLodge  = "LODGE"
	CategoryDining = "DINING"
	CategoryEvent  = "EVENT"
)

// Listing lifecycle states. Only PUBLISHED listings are visible on
// public browse and search endpoints.
const (
	ListingDraft     = "DRAFT"
	ListingPublished = "PUBLISHED"
	ListingArchived  = "ARCHIVED"
)

// Listing is a bookable offering at a location: a lodge, a dining room
// or an event space. The actual inventory lives in the listing's
// resources; BasePriceCents applies to resources without an override.
// Description is stored as sanitized HTML.
type Listing struct {
	ID             uint64       `gorm:"primaryKey" json:"id"`
	LocationID     uint64       `gorm:"index;not null" json:"location_id"`
	Location       *Location    `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	GroupID        *uint64      `gorm:"index" json:"group_id,omitempty"`
	Name           string       `gorm:"size:200;not null" json:"name"`
	Slug           string       `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Category       string       `gorm:"size:16;not null" json:"category"`
	Description    string       `gorm:"type:text" json:"description"`
	Status         string       `gorm:"size:16;not null;default:DRAFT" json:"status"`
	BasePriceCents uint32       `gorm:"not null;default:0" json:"base_price_cents"`
	Facilities     []Facility   `gorm:"many2many:listing_facilities" json:"facilities,omitempty"`
	Resources      []Resource   `gorm:"foreignKey:ListingID" json:"resources,omitempty"`
	Rules          []Rule       `gorm:"foreignKey:ListingID" json:"rules,omitempty"`
	Media          []MediaAsset `gorm:"foreignKey:ListingID" json:"media,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ValidCategory reports whether s is a known listing category.
func ValidCategory(s string) bool {
	return s == CategoryLodge || s == CategoryDining || s == CategoryEvent
}
