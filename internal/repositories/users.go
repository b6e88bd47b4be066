package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pomotrack-backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository persists user identities. Usernames are unique and
// case-sensitive; emails are unique and stored lowercased.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and relies on the unique indexes to reject
// duplicates, then classifies which field conflicted.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var taken int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if taken > 0 {
		return nil, ErrDuplicateUsername
	}
	return nil, ErrDuplicateEmail
}

// FindByUsernameOrEmail resolves a login identifier: exact username match,
// or case-insensitive email match.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}
