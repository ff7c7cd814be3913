package store

import (
	"context"
	"errors"
	"strings"

	"parasitehub/internal/models"
	"parasitehub/internal/utils"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

// Register creates a User and its 1:1 UserProfile in one transaction.
// The password is stored as a bcrypt hash only.
func (s *UserStore) Register(ctx context.Context, username, email, password, role, picture string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrValidation
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile := models.UserProfile{
		Role:    role,
		Picture: picture,
		User: models.User{
			Username: username,
			Email:    email,
			Password: hash,
			IsActive: true,
		},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile.User).Error; err != nil {
			return err
		}
		profile.UserID = profile.User.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Authenticate resolves username/password to a User. Failures stay generic
// so login responses never reveal whether the account exists.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return &user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ProfileByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *UserStore) ProfileByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Preload("User").
		Joins("JOIN users ON users.id = user_profiles.user_id").
		Where("users.username = ?", username).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// SearchByUsername returns profiles whose username contains query,
// case-insensitive. LOWER(...) LIKE rather than ILIKE so it behaves the same
// on postgres and the sqlite used in tests.
func (s *UserStore) SearchByUsername(ctx context.Context, query string) ([]models.UserProfile, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var profiles []models.UserProfile
	err := s.db.WithContext(ctx).Preload("User").
		Joins("JOIN users ON users.id = user_profiles.user_id").
		Where("LOWER(users.username) LIKE ?", pattern).
		Order("users.username ASC").
		Find(&profiles).Error
	return profiles, err
}

// SetRole changes the target's role. Only an admin actor may call it; the
// returned flag distinguishes an applied mutation from a redisplayed form.
func (s *UserStore) SetRole(ctx context.Context, actorRole, targetUsername, newRole string) (changed bool, err error) {
	if actorRole != models.RoleAdmin {
		return false, ErrForbidden
	}
	if !models.ValidRole(newRole) {
		return false, ErrInvalidRole
	}

	profile, err := s.ProfileByUsername(ctx, targetUsername)
	if err != nil {
		return false, err
	}
	if profile.Role == newRole {
		return false, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", profile.ID).
		Update("role", newRole).Error; err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePicture sets the profile's own avatar path.
func (s *UserStore) UpdatePicture(ctx context.Context, profileID uint, picture string) error {
	result := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", profileID).
		Update("picture", picture)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
