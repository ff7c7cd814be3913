package models

import (
	"time"
)

// Article is a public-facing write-up linked to exactly one Parasite.
// URL is stored with the https:// prefix already applied (see utils.NormalizeURL).
type Article struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ParasiteID uint        `gorm:"not null;index" json:"parasite_id"`
	Parasite   Parasite    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parasite"`
	ProfileID  uint        `gorm:"not null;index" json:"profile_id"`
	Profile    UserProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"`
	Title      string      `gorm:"not null;size:128" json:"title"`
	Content    string      `gorm:"type:text" json:"content"`
	URL        string      `gorm:"size:200" json:"url"`
	Picture    string      `json:"picture"`
	Views      int         `gorm:"default:0" json:"views"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
