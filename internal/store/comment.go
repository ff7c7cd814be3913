package store

import (
	"context"
	"errors"
	"strings"

	"parasitehub/internal/models"

	"gorm.io/gorm"
)

type CommentStore struct {
	db *gorm.DB
}

// AddComment attaches a comment to one post of the given kind. Empty or
// whitespace-only text is rejected before anything touches the database.
func (s *CommentStore) AddComment(ctx context.Context, kind string, postID, profileID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	comment := models.Comment{
		ProfileID: profileID,
		Text:      text,
	}
	if kind == models.KindResearch {
		var count int64
		s.db.WithContext(ctx).Model(&models.ResearchPost{}).Where("id = ?", postID).Count(&count)
		if count == 0 {
			return nil, ErrNotFound
		}
		comment.ResearchPostID = &postID
	} else {
		var count int64
		s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count)
		if count == 0 {
			return nil, ErrNotFound
		}
		comment.PostID = &postID
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddReply nests one level under a comment; replies to replies don't exist in
// this model.
func (s *CommentStore) AddReply(ctx context.Context, commentID, profileID uint, text string) (*models.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	var parent models.Comment
	if err := s.db.WithContext(ctx).First(&parent, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reply := models.Reply{
		CommentID: parent.ID,
		ProfileID: profileID,
		Text:      text,
	}
	if err := s.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListForPost loads a post's comments oldest first, replies preloaded.
func (s *CommentStore) ListForPost(ctx context.Context, kind string, postID uint) ([]models.Comment, error) {
	column := "post_id"
	if kind == models.KindResearch {
		column = "research_post_id"
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Profile.User").
		Preload("Replies.Profile.User").
		Where(column+" = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CountForPost returns how many comments a post has.
func (s *CommentStore) CountForPost(ctx context.Context, kind string, postID uint) (int64, error) {
	column := "post_id"
	if kind == models.KindResearch {
		column = "research_post_id"
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).Where(column+" = ?", postID).Count(&count).Error
	return count, err
}
