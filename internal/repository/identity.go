// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"ideaboard/internal/models"

	"gorm.io/gorm"
)

// IdentityRepository defines persistence operations for session identities.
type IdentityRepository interface {
	GetByToken(ctx context.Context, token string) (*models.Identity, error)
	GetByID(ctx context.Context, id uint) (*models.Identity, error)
	Create(ctx context.Context, identity *models.Identity) error
	TouchActivity(ctx context.Context, id uint, ip, userAgent string) error
	SetRole(ctx context.Context, id uint, role models.Role) error
	SetUsername(ctx context.Context, id uint, username string) error
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
}

type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository returns a new IdentityRepository implementation.
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) GetByToken(ctx context.Context, token string) (*models.Identity, error) {
	var identity models.Identity
	if err := readDB(r.db).WithContext(ctx).Where("session_token = ?", token).First(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return &identity, nil
}

func (r *identityRepository) GetByID(ctx context.Context, id uint) (*models.Identity, error) {
	var identity models.Identity
	if err := readDB(r.db).WithContext(ctx).First(&identity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Identity", id)
		}
		return nil, storageError(err)
	}
	return &identity, nil
}

func (r *identityRepository) Create(ctx context.Context, identity *models.Identity) error {
	if err := r.db.WithContext(ctx).Create(identity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Session token already exists")
		}
		return storageError(err)
	}
	return nil
}

func (r *identityRepository) TouchActivity(ctx context.Context, id uint, ip, userAgent string) error {
	updates := map[string]interface{}{
		"last_activity": time.Now(),
		"ip_address":    ip,
	}
	if userAgent != "" {
		updates["user_agent"] = userAgent
	}
	if err := r.db.WithContext(ctx).Model(&models.Identity{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return storageError(err)
	}
	return nil
}

func (r *identityRepository) SetRole(ctx context.Context, id uint, role models.Role) error {
	result := r.db.WithContext(ctx).Model(&models.Identity{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Identity", id)
	}
	return nil
}

func (r *identityRepository) SetUsername(ctx context.Context, id uint, username string) error {
	result := r.db.WithContext(ctx).Model(&models.Identity{}).Where("id = ?", id).Update("username", username)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Identity", id)
	}
	return nil
}

func (r *identityRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Identity{}).Where("last_activity > ?", since).Count(&count).Error; err != nil {
		return 0, storageError(err)
	}
	return count, nil
}
