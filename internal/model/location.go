package model

import "time"

// Location is a place (town, resort area, venue cluster) listings are
// attached to. Timezone holds an IANA zone name; report bucket
// boundaries for a location are computed in that zone.
type Location struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Region    string    `gorm:"size:200" json:"region"`
	Timezone  string    `gorm:"size:64;not null;default:UTC" json:"timezone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
