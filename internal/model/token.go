package model

import "time"

// RefreshToken stores the SHA-256 hash of a refresh token issued to a
// user. The raw token never touches the database. RevokedAt is set on
// logout and on rotation.
type RefreshToken struct {
	ID        uint64     `gorm:"primaryKey" json:"-"`
	UserID    uint64     `gorm:"index;not null" json:"-"`
	TokenHash string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"-"`
	RevokedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"-"`
}

// Usable reports whether the token can still be exchanged at the given
// instant.
func (t RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
