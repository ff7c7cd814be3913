package models

import (
	"time"
)

// Attachment child records. Each row references exactly one parent post;
// a post with zero attachments is valid.

type ClinicalImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	Image     string    `gorm:"not null" json:"image"` // stored path
	CreatedAt time.Time `json:"created_at"`
}

type ResearchImage struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ResearchPostID uint         `gorm:"not null;index" json:"research_post_id"`
	ResearchPost   ResearchPost `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"research_post"`
	Image          string       `gorm:"not null" json:"image"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ResearchFile is the research-only document attachment kind.
type ResearchFile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ResearchPostID uint         `gorm:"not null;index" json:"research_post_id"`
	ResearchPost   ResearchPost `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"research_post"`
	File           string       `gorm:"not null" json:"file"`
	CreatedAt      time.Time    `json:"created_at"`
}
