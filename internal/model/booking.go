package model

import "time"

// Booking lifecycle states. PENDING bookings hold inventory until
// HoldExpiresAt; the expiry sweep moves stale ones to EXPIRED.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingExpired   = "EXPIRED"
)

// Booking reserves Units of a resource for the half-open date range
// [CheckIn, CheckOut). Both dates are stored at midnight UTC; the range
// covers at least one day so dining and event bookings fit the same
// shape as multi-night lodge stays. Reference is the short code shown
// to the guest and used in emails.
type Booking struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	Reference        string     `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	UserID           uint64     `gorm:"index;not null" json:"user_id"`
	User             *User      `gorm:"foreignKey:UserID" json:"-"`
	ListingID        uint64     `gorm:"index;not null" json:"listing_id"`
	Listing          *Listing   `gorm:"foreignKey:ListingID" json:"-"`
	ResourceID       uint64     `gorm:"index;not null" json:"resource_id"`
	Resource         *Resource  `gorm:"foreignKey:ResourceID" json:"-"`
	Status           string     `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	CheckIn          time.Time  `gorm:"index;not null" json:"check_in"`
	CheckOut         time.Time  `gorm:"not null" json:"check_out"`
	Units            uint32     `gorm:"not null;default:1" json:"units"`
	Guests           uint32     `gorm:"not null;default:1" json:"guests"`
	TotalAmountCents uint32     `gorm:"not null;default:0" json:"total_amount_cents"`
	Note             string     `gorm:"size:500" json:"note"`
	HoldExpiresAt    *time.Time `json:"hold_expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HoldsInventory reports whether the booking still counts against
// resource availability.
func (b Booking) HoldsInventory() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// HoldLapsed reports whether a pending hold has passed its expiry at
// now. Only PENDING bookings carry a live hold; the expiry sweep
// flips exactly these rows to EXPIRED, and confirm refuses them even
// before the sweep runs.
func (b Booking) HoldLapsed(now time.Time) bool {
	return b.Status == BookingPending && b.HoldExpiresAt != nil && b.HoldExpiresAt.Before(now)
}
