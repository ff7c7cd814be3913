package store

import (
	"context"
	"errors"

	"parasitehub/internal/models"

	"gorm.io/gorm"
)

type ReactionStore struct {
	db *gorm.DB
}

// Counts holds the like/dislike tallies returned after every toggle.
type Counts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// ToggleLike flips the caller's like on a post: absent -> liked,
// liked -> neutral, disliked -> liked. One row per (user, post) keeps the
// like and dislike sets mutually exclusive.
func (s *ReactionStore) ToggleLike(ctx context.Context, kind string, postID, userID uint) (Counts, error) {
	return s.toggle(ctx, kind, postID, userID, models.ReactionLike)
}

// ToggleDislike is symmetric to ToggleLike.
func (s *ReactionStore) ToggleDislike(ctx context.Context, kind string, postID, userID uint) (Counts, error) {
	return s.toggle(ctx, kind, postID, userID, models.ReactionDislike)
}

func (s *ReactionStore) toggle(ctx context.Context, kind string, postID, userID uint, value int) (Counts, error) {
	if err := s.postExists(ctx, kind, postID); err != nil {
		return Counts{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID)
		if kind == models.KindResearch {
			query = query.Where("research_post_id = ?", postID)
		} else {
			query = query.Where("post_id = ?", postID)
		}

		var existing models.Reaction
		err := query.First(&existing).Error
		switch {
		case err == nil && existing.Value == value:
			// Same reaction again: un-react.
			return tx.Delete(&existing).Error
		case err == nil:
			// Cross-transition: liked -> disliked or the reverse.
			return tx.Model(&existing).Update("value", value).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.Reaction{UserID: userID, Value: value}
			if kind == models.KindResearch {
				reaction.ResearchPostID = &postID
			} else {
				reaction.PostID = &postID
			}
			return tx.Create(&reaction).Error
		default:
			return err
		}
	})
	if err != nil {
		return Counts{}, err
	}

	return s.CountsFor(ctx, kind, postID)
}

// CountsFor tallies the current like and dislike sets of a post.
func (s *ReactionStore) CountsFor(ctx context.Context, kind string, postID uint) (Counts, error) {
	column := "post_id"
	if kind == models.KindResearch {
		column = "research_post_id"
	}

	var counts Counts
	err := s.db.WithContext(ctx).Model(&models.Reaction{}).
		Where(column+" = ? AND value = ?", postID, models.ReactionLike).
		Count(&counts.Likes).Error
	if err != nil {
		return Counts{}, err
	}
	err = s.db.WithContext(ctx).Model(&models.Reaction{}).
		Where(column+" = ? AND value = ?", postID, models.ReactionDislike).
		Count(&counts.Dislikes).Error
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *ReactionStore) postExists(ctx context.Context, kind string, postID uint) error {
	var count int64
	if kind == models.KindResearch {
		s.db.WithContext(ctx).Model(&models.ResearchPost{}).Where("id = ?", postID).Count(&count)
	} else {
		s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
