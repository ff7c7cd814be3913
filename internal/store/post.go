package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"parasitehub/internal/models"

	"gorm.io/gorm"
)

type PostStore struct {
	db *gorm.DB
}

func (s *PostStore) parasiteExists(ctx context.Context, parasiteID uint) error {
	var count int64
	s.db.WithContext(ctx).Model(&models.Parasite{}).Where("id = ?", parasiteID).Count(&count)
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateClinical creates a clinical post plus its image attachments in one
// transaction. Role gating happens at the middleware layer before this runs.
func (s *PostStore) CreateClinical(ctx context.Context, parasiteID, profileID uint, title, content string, images []string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrValidation
	}
	if err := s.parasiteExists(ctx, parasiteID); err != nil {
		return nil, err
	}

	post := models.Post{
		ParasiteID: parasiteID,
		ProfileID:  profileID,
		Title:      title,
		Content:    content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		for _, image := range images {
			if err := tx.Create(&models.ClinicalImage{PostID: post.ID, Image: image}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateResearch mirrors CreateClinical and additionally persists file
// attachments, which only research posts carry.
func (s *PostStore) CreateResearch(ctx context.Context, parasiteID, profileID uint, title, content string, images, files []string) (*models.ResearchPost, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrValidation
	}
	if err := s.parasiteExists(ctx, parasiteID); err != nil {
		return nil, err
	}

	post := models.ResearchPost{
		ParasiteID: parasiteID,
		ProfileID:  profileID,
		Title:      title,
		Content:    content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		for _, image := range images {
			if err := tx.Create(&models.ResearchImage{ResearchPostID: post.ID, Image: image}).Error; err != nil {
				return err
			}
		}
		for _, file := range files {
			if err := tx.Create(&models.ResearchFile{ResearchPostID: post.ID, File: file}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) GetClinical(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Parasite").Preload("Profile.User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	posts := []models.Post{post}
	s.fillClinicalEngagement(posts)
	return &posts[0], nil
}

func (s *PostStore) GetResearch(ctx context.Context, id uint) (*models.ResearchPost, error) {
	var post models.ResearchPost
	err := s.db.WithContext(ctx).Preload("Parasite").Preload("Profile.User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	posts := []models.ResearchPost{post}
	s.fillResearchEngagement(posts)
	return &posts[0], nil
}

func (s *PostStore) ClinicalImages(ctx context.Context, postID uint) ([]models.ClinicalImage, error) {
	var images []models.ClinicalImage
	err := s.db.WithContext(ctx).Where("post_id = ?", postID).Find(&images).Error
	return images, err
}

func (s *PostStore) ResearchAttachments(ctx context.Context, postID uint) ([]models.ResearchImage, []models.ResearchFile, error) {
	var images []models.ResearchImage
	if err := s.db.WithContext(ctx).Where("research_post_id = ?", postID).Find(&images).Error; err != nil {
		return nil, nil, err
	}
	var files []models.ResearchFile
	if err := s.db.WithContext(ctx).Where("research_post_id = ?", postID).Find(&files).Error; err != nil {
		return nil, nil, err
	}
	return images, files, nil
}

func (s *PostStore) ListClinicalByParasite(ctx context.Context, parasiteID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Preload("Profile.User").
		Where("parasite_id = ?", parasiteID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	s.fillClinicalEngagement(posts)
	return posts, nil
}

func (s *PostStore) ListResearchByParasite(ctx context.Context, parasiteID uint) ([]models.ResearchPost, error) {
	var posts []models.ResearchPost
	err := s.db.WithContext(ctx).Preload("Profile.User").
		Where("parasite_id = ?", parasiteID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	s.fillResearchEngagement(posts)
	return posts, nil
}

// PopularClinical ranks posts by like-set cardinality, descending, truncated
// to limit. Counts come from the reaction rows, not a denormalized column.
func (s *PostStore) PopularClinical(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Preload("Profile.User").Find(&posts).Error; err != nil {
		return nil, err
	}
	s.fillClinicalEngagement(posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].LikeCount > posts[j].LikeCount
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *PostStore) PopularResearch(ctx context.Context, limit int) ([]models.ResearchPost, error) {
	var posts []models.ResearchPost
	if err := s.db.WithContext(ctx).Preload("Profile.User").Find(&posts).Error; err != nil {
		return nil, err
	}
	s.fillResearchEngagement(posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].LikeCount > posts[j].LikeCount
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// ListByAuthor returns both post kinds for one profile, newest first within
// each kind.
func (s *PostStore) ListByAuthor(ctx context.Context, profileID uint) ([]models.Post, []models.ResearchPost, error) {
	var clinical []models.Post
	if err := s.db.WithContext(ctx).Preload("Parasite").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&clinical).Error; err != nil {
		return nil, nil, err
	}
	var research []models.ResearchPost
	if err := s.db.WithContext(ctx).Preload("Parasite").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&research).Error; err != nil {
		return nil, nil, err
	}
	s.fillClinicalEngagement(clinical)
	s.fillResearchEngagement(research)
	return clinical, research, nil
}

// Delete removes one of the author's posts along with its attachments,
// comment tree and reactions. Tries the research table first, then clinical.
func (s *PostStore) Delete(ctx context.Context, profileID, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var research models.ResearchPost
		err := tx.Where("id = ? AND profile_id = ?", postID, profileID).First(&research).Error
		if err == nil {
			return deleteResearchTree(tx, research.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var clinical models.Post
		err = tx.Where("id = ? AND profile_id = ?", postID, profileID).First(&clinical).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return deleteClinicalTree(tx, clinical.ID)
	})
}

func deleteClinicalTree(tx *gorm.DB, postID uint) error {
	var commentIDs []uint
	tx.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIDs)
	if len(commentIDs) > 0 {
		if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.ClinicalImage{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Post{}, postID).Error
}

func deleteResearchTree(tx *gorm.DB, postID uint) error {
	var commentIDs []uint
	tx.Model(&models.Comment{}).Where("research_post_id = ?", postID).Pluck("id", &commentIDs)
	if len(commentIDs) > 0 {
		if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("research_post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("research_post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("research_post_id = ?", postID).Delete(&models.ResearchImage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("research_post_id = ?", postID).Delete(&models.ResearchFile{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.ResearchPost{}, postID).Error
}

// fillClinicalEngagement batch-fills like/dislike/comment counts.
func (s *PostStore) fillClinicalEngagement(posts []models.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	type countRow struct {
		ID    uint
		Count int
	}

	likeMap := make(map[uint]int)
	dislikeMap := make(map[uint]int)
	commentMap := make(map[uint]int)

	var rows []countRow
	s.db.Model(&models.Reaction{}).
		Select("post_id AS id, COUNT(*) AS count").
		Where("post_id IN ? AND value = ?", ids, models.ReactionLike).
		Group("post_id").
		Scan(&rows)
	for _, r := range rows {
		likeMap[r.ID] = r.Count
	}

	rows = nil
	s.db.Model(&models.Reaction{}).
		Select("post_id AS id, COUNT(*) AS count").
		Where("post_id IN ? AND value = ?", ids, models.ReactionDislike).
		Group("post_id").
		Scan(&rows)
	for _, r := range rows {
		dislikeMap[r.ID] = r.Count
	}

	rows = nil
	s.db.Model(&models.Comment{}).
		Select("post_id AS id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows)
	for _, r := range rows {
		commentMap[r.ID] = r.Count
	}

	for i := range posts {
		posts[i].LikeCount = likeMap[posts[i].ID]
		posts[i].DislikeCount = dislikeMap[posts[i].ID]
		posts[i].CommentCount = commentMap[posts[i].ID]
	}
}

func (s *PostStore) fillResearchEngagement(posts []models.ResearchPost) {
	if len(posts) == 0 {
		return
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	type countRow struct {
		ID    uint
		Count int
	}

	likeMap := make(map[uint]int)
	dislikeMap := make(map[uint]int)
	commentMap := make(map[uint]int)

	var rows []countRow
	s.db.Model(&models.Reaction{}).
		Select("research_post_id AS id, COUNT(*) AS count").
		Where("research_post_id IN ? AND value = ?", ids, models.ReactionLike).
		Group("research_post_id").
		Scan(&rows)
	for _, r := range rows {
		likeMap[r.ID] = r.Count
	}

	rows = nil
	s.db.Model(&models.Reaction{}).
		Select("research_post_id AS id, COUNT(*) AS count").
		Where("research_post_id IN ? AND value = ?", ids, models.ReactionDislike).
		Group("research_post_id").
		Scan(&rows)
	for _, r := range rows {
		dislikeMap[r.ID] = r.Count
	}

	rows = nil
	s.db.Model(&models.Comment{}).
		Select("research_post_id AS id, COUNT(*) AS count").
		Where("research_post_id IN ?", ids).
		Group("research_post_id").
		Scan(&rows)
	for _, r := range rows {
		commentMap[r.ID] = r.Count
	}

	for i := range posts {
		posts[i].LikeCount = likeMap[posts[i].ID]
		posts[i].DislikeCount = dislikeMap[posts[i].ID]
		posts[i].CommentCount = commentMap[posts[i].ID]
	}
}
