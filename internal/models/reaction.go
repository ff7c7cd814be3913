package models

import (
	"time"
)

// Reaction values.
const (
	ReactionLike    = 1
	ReactionDislike = -1
)

// Reaction is one user's like or dislike of one post. Exactly one of PostID /
// ResearchPostID is set. A single row per (user, post) pair means a user can
// never be in both the like and dislike set at once.
type Reaction struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index;uniqueIndex:idx_reaction_post;uniqueIndex:idx_reaction_research" json:"user_id"`
	User           User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PostID         *uint     `gorm:"uniqueIndex:idx_reaction_post" json:"post_id"`
	ResearchPostID *uint     `gorm:"uniqueIndex:idx_reaction_research" json:"research_post_id"`
	Value          int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt      time.Time `json:"created_at"`
}

// PG treats NULLs as distinct in unique indexes, so the two partial pairs
// (user_id, post_id) and (user_id, research_post_id) coexist cleanly.
