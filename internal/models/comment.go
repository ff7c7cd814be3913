package models

import (
	"time"
)

// Comment hangs off exactly one of {Post, ResearchPost}; never both, never
// neither once persisted.
type Comment struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	PostID         *uint         `gorm:"index" json:"post_id"`
	Post           *Post         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	ResearchPostID *uint         `gorm:"index" json:"research_post_id"`
	ResearchPost   *ResearchPost `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"research_post"`
	ProfileID      uint          `gorm:"not null;index" json:"profile_id"`
	Profile        UserProfile   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"`
	Text           string        `gorm:"type:text;not null" json:"text"`
	Replies        []Reply       `gorm:"foreignKey:CommentID" json:"replies"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Reply attaches to a parent Comment. Replies nest exactly one level; there is
// no reply-to-reply.
type Reply struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	CommentID uint        `gorm:"not null;index" json:"comment_id"`
	Comment   Comment     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comment"`
	ProfileID uint        `gorm:"not null;index" json:"profile_id"`
	Profile   UserProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile"`
	Text      string      `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}
