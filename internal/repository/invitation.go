package repository

import (
	"context"
	"errors"
	"time"

	"ideaboard/internal/models"

	"gorm.io/gorm"
)

// InvitationRepository defines persistence operations for invitation codes.
type InvitationRepository interface {
	Create(ctx context.Context, code *models.InvitationCode) error
	GetByCode(ctx context.Context, code string) (*models.InvitationCode, error)
	// Redeem consumes one use of the code for the given identity. The
	// update is conditional on the code still being redeemable, so two
	// concurrent redemptions of a single-use code cannot both succeed.
	Redeem(ctx context.Context, code string, usedBy string, now time.Time) (*models.InvitationCode, error)
	EnsureSeeded(ctx context.Context, code *models.InvitationCode) error
	List(ctx context.Context, limit, offset int) ([]models.InvitationCode, error)
	Deactivate(ctx context.Context, id uint) error
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository returns a new InvitationRepository implementation.
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, code *models.InvitationCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Invitation code already exists")
		}
		return storageError(err)
	}
	return nil
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*models.InvitationCode, error) {
	var invitation models.InvitationCode
	if err := readDB(r.db).WithContext(ctx).Where("code = ?", code).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Invitation code", code)
		}
		return nil, storageError(err)
	}
	return &invitation, nil
}

func (r *invitationRepository) Redeem(ctx context.Context, code string, usedBy string, now time.Time) (*models.InvitationCode, error) {
	result := r.db.WithContext(ctx).Model(&models.InvitationCode{}).
		Where("code = ? AND is_active = ? AND use_count < max_uses AND expires_at > ?", code, true, now).
		Updates(map[string]interface{}{
			"use_count": gorm.Expr("use_count + 1"),
			"used_by":   usedBy,
			"used_at":   now,
		})
	if result.Error != nil {
		return nil, storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a code that lost the race or expired from one that
		// never existed. An unknown code reads as Unauthorized, not
		// NotFound: a distinct 404 would let callers enumerate live codes.
		existing, err := r.GetByCode(ctx, code)
		if err != nil {
			if models.IsCode(err, models.ErrCodeNotFound) {
				return nil, models.NewUnauthorizedError("Invalid invitation code")
			}
			return nil, err
		}
		if !existing.Redeemable(now) {
			return nil, models.NewConflictError("Invitation code is no longer valid")
		}
		return nil, models.NewConflictError("Invitation code was already redeemed")
	}
	return r.GetByCode(ctx, code)
}

// EnsureSeeded inserts the code if absent. Existing codes are left untouched
// so redeployments do not reset use counts.
func (r *invitationRepository) EnsureSeeded(ctx context.Context, code *models.InvitationCode) error {
	var existing models.InvitationCode
	err := r.db.WithContext(ctx).Where("code = ?", code.Code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageError(err)
	}
	return r.Create(ctx, code)
}

func (r *invitationRepository) List(ctx context.Context, limit, offset int) ([]models.InvitationCode, error) {
	var codes []models.InvitationCode
	if err := readDB(r.db).WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&codes).Error; err != nil {
		return nil, storageError(err)
	}
	return codes, nil
}

func (r *invitationRepository) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.InvitationCode{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Invitation code", id)
	}
	return nil
}
