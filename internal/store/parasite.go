package store

import (
	"context"
	"errors"
	"strings"

	"parasitehub/internal/models"

	"gorm.io/gorm"
)

type ParasiteStore struct {
	db *gorm.DB
}

// Create adds a parasite. Names are unique across the catalog.
func (s *ParasiteStore) Create(ctx context.Context, name, picture, intro string) (*models.Parasite, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > models.ParasiteNameMaxLength {
		return nil, ErrValidation
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.Parasite{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateName
	}

	parasite := models.Parasite{
		Name:    name,
		Picture: picture,
		Intro:   intro,
	}
	if err := s.db.WithContext(ctx).Create(&parasite).Error; err != nil {
		return nil, err
	}
	return &parasite, nil
}

func (s *ParasiteStore) GetByID(ctx context.Context, id uint) (*models.Parasite, error) {
	var parasite models.Parasite
	if err := s.db.WithContext(ctx).First(&parasite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &parasite, nil
}

// View returns the parasite and bumps its view counter by exactly one.
// The increment is a column expression so concurrent visits don't collapse
// into a single count.
func (s *ParasiteStore) View(ctx context.Context, id uint) (*models.Parasite, error) {
	result := s.db.WithContext(ctx).Model(&models.Parasite{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// ListByName returns the whole catalog, lexicographic ascending.
func (s *ParasiteStore) ListByName(ctx context.Context) ([]models.Parasite, error) {
	var parasites []models.Parasite
	err := s.db.WithContext(ctx).Order("name ASC").Find(&parasites).Error
	return parasites, err
}

// ListByPopularity returns the most-viewed parasites, truncated to limit.
func (s *ParasiteStore) ListByPopularity(ctx context.Context, limit int) ([]models.Parasite, error) {
	var parasites []models.Parasite
	err := s.db.WithContext(ctx).Order("views DESC").Limit(limit).Find(&parasites).Error
	return parasites, err
}
