package models

import (
	"time"
)

// Account roles. Role lives on the profile, not the user, so identity and
// authorization stay separate records.
const (
	RolePublic     = "public"
	RoleClinician  = "clinician"
	RoleResearcher = "researcher"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RolePublic, RoleClinician, RoleResearcher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:128;not null" json:"username"`
	Email     string    `gorm:"not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}

// UserProfile is 1:1 with User and carries the role plus an optional picture.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Role      string    `gorm:"size:20;default:'public';not null" json:"role"`
	Picture   string    `json:"picture"` // optional avatar path
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
