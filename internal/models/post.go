package models

import (
	"time"
)

// Post kinds. Clinical and research posts are parallel tables with the same
// shape; research posts additionally carry file attachments.
const (
	KindClinical = "clinical"
	KindResearch = "research"
)

// Post is a clinician-authored case post under a parasite.
type Post struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ParasiteID uint        `gorm:"not null;index" json:"parasite_id"`
	Parasite   Parasite    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parasite"`
	ProfileID  uint        `gorm:"not null;index" json:"profile_id"`
	Profile    UserProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"`
	Title      string      `gorm:"not null;size:128" json:"title"`
	Content    string      `gorm:"type:text" json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Filled at query time, not persisted.
	LikeCount    int `gorm:"-" json:"like_count"`
	DislikeCount int `gorm:"-" json:"dislike_count"`
	CommentCount int `gorm:"-" json:"comment_count"`
}

// ResearchPost mirrors Post for the researcher-facing portal.
type ResearchPost struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ParasiteID uint        `gorm:"not null;index" json:"parasite_id"`
	Parasite   Parasite    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parasite"`
	ProfileID  uint        `gorm:"not null;index" json:"profile_id"`
	Profile    UserProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"`
	Title      string      `gorm:"not null;size:128" json:"title"`
	Content    string      `gorm:"type:text" json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	LikeCount    int `gorm:"-" json:"like_count"`
	DislikeCount int `gorm:"-" json:"dislike_count"`
	CommentCount int `gorm:"-" json:"comment_count"`
}
