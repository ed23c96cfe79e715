package model

import "time"

// Roles stored in users.role and carried in the JWT "role" claim.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
	RoleUser  = "USER"
)

// User is an account that can sign in. Staff accounts may belong to a
// Group, which scopes the listings and bookings they can manage.
// Deactivated users keep their rows but can no longer authenticate.
type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	FullName     string    `gorm:"size:255" json:"full_name"`
	Role         string    `gorm:"size:16;not null;default:USER" json:"role"`
	GroupID      *uint64   `gorm:"index" json:"group_id,omitempty"`
	Group        *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether s is one of the known role values.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleStaff || s == RoleUser
}
