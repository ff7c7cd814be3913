package store

import (
	"context"
	"errors"
	"strings"

	"parasitehub/internal/models"
	"parasitehub/internal/utils"

	"gorm.io/gorm"
)

type ArticleStore struct {
	db *gorm.DB
}

// Create attaches a new article to a parasite. The URL is normalized to the
// https:// prefix before it is persisted.
func (s *ArticleStore) Create(ctx context.Context, parasiteID, profileID uint, title, content, url, picture string) (*models.Article, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrValidation
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.Parasite{}).Where("id = ?", parasiteID).Count(&count)
	if count == 0 {
		return nil, ErrNotFound
	}

	article := models.Article{
		ParasiteID: parasiteID,
		ProfileID:  profileID,
		Title:      title,
		Content:    content,
		URL:        utils.NormalizeURL(url),
		Picture:    picture,
	}
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// View returns the article and bumps its view counter atomically.
func (s *ArticleStore) View(ctx context.Context, id uint) (*models.Article, error) {
	result := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var article models.Article
	err := s.db.WithContext(ctx).Preload("Parasite").Preload("Profile.User").First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) ListByParasite(ctx context.Context, parasiteID uint) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).Preload("Profile.User").
		Where("parasite_id = ?", parasiteID).
		Order("created_at DESC").
		Find(&articles).Error
	return articles, err
}

// ListByViews orders the whole article set by view count ascending, matching
// the public content page.
func (s *ArticleStore) ListByViews(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).Preload("Parasite").Order("views ASC").Find(&articles).Error
	return articles, err
}
