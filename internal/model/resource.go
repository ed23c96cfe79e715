package model

import "time"

// Resource is a bookable unit type under a listing: a room class, a
// table size, a seating block. Quantity is the number of identical
// units in inventory; Capacity is how many guests one unit holds.
// PriceCents overrides the listing base price when non-zero.
type Resource struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ListingID  uint64    `gorm:"index;not null" json:"listing_id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Capacity   uint32    `gorm:"not null;default:1" json:"capacity"`
	Quantity   uint32    `gorm:"not null;default:1" json:"quantity"`
	PriceCents uint32    `gorm:"not null;default:0" json:"price_cents"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UnitPriceCents resolves the nightly price for one unit, falling back
// to the listing base price when the resource has no override.
func (r Resource) UnitPriceCents(basePrice uint32) uint32 {
	if r.PriceCents > 0 {
		return r.PriceCents
	}
	return basePrice
}
