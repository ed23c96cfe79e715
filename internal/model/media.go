package model

import "time"

// MediaAsset records an object-storage upload attached to a listing.
// Key is the object key inside the bucket; URL is the public address
// returned by the storage layer at upload time.
type MediaAsset struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	ListingID   uint64    `gorm:"index;not null" json:"listing_id"`
	Key         string    `gorm:"size:500;uniqueIndex;not null" json:"key"`
	URL         string    `gorm:"size:1000;not null" json:"url"`
	ContentType string    `gorm:"size:120" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
