package model

import "time"

// Facility is an amenity tag (wifi, sauna, parking) shared across
// listings through the listing_facilities join table.
type Facility struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Icon      string    `gorm:"size:64" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
