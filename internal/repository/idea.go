package repository

import (
	"context"
	"errors"
	"time"

	"ideaboard/internal/cache"
	"ideaboard/internal/models"

	"gorm.io/gorm"
)

// IdeaRepository defines the interface for idea data operations.
type IdeaRepository interface {
	Create(ctx context.Context, idea *models.Idea) error
	GetByID(ctx context.Context, id uint) (*models.Idea, error)
	ListVisible(ctx context.Context, statuses []models.IdeaStatus, limit, offset int) ([]*models.Idea, error)
	ListByStatus(ctx context.Context, status models.IdeaStatus, limit, offset int) ([]*models.Idea, error)
	UpdateStatus(ctx context.Context, id uint, status models.IdeaStatus, reviewerID uint, notes string) (*models.Idea, error)
	SetFeatured(ctx context.Context, id uint, featured bool, reviewerID uint) (*models.Idea, error)
	// SoftDelete removes the idea from all listings and cascades a soft
	// delete over its live comments in the same transaction.
	SoftDelete(ctx context.Context, id uint, deletedBy uint) error
	// AddVote appends to the vote ledger and bumps the denormalized
	// counter atomically. A second vote from the same address on the
	// same idea returns a conflict.
	AddVote(ctx context.Context, ideaID uint, voterIP string, identityID *uint) (*models.Idea, error)
	HasVoted(ctx context.Context, ideaID uint, voterIP string) (bool, error)
	CountByStatus(ctx context.Context) (map[models.IdeaStatus]int64, error)
	CountVotes(ctx context.Context) (int64, error)
}

type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new idea repository.
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *models.Idea) error {
	if err := r.db.WithContext(ctx).Create(idea).Error; err != nil {
		return storageError(err)
	}
	cache.InvalidateListings(ctx)
	return nil
}

// applyIdeaDetails adds subqueries so counts arrive in a single query.
func (r *ideaRepository) applyIdeaDetails(db *gorm.DB) *gorm.DB {
	return db.Select("ideas.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.idea_id = ideas.id AND comments.is_deleted = false) as comment_count, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.idea_id = ideas.id) as vote_count")
}

func (r *ideaRepository) GetByID(ctx context.Context, id uint) (*models.Idea, error) {
	var idea models.Idea
	err := r.applyIdeaDetails(readDB(r.db).WithContext(ctx)).First(&idea, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Idea", id)
		}
		return nil, storageError(err)
	}
	return &idea, nil
}

// boardOrder is the single ordering every listing uses: featured first,
// then vote count, then recency.
func boardOrder(db *gorm.DB) *gorm.DB {
	return db.Order("is_featured DESC, votes DESC, created_at DESC")
}

func (r *ideaRepository) ListVisible(ctx context.Context, statuses []models.IdeaStatus, limit, offset int) ([]*models.Idea, error) {
	var ideas []*models.Idea
	query := r.applyIdeaDetails(readDB(r.db).WithContext(ctx))
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := boardOrder(query).Limit(limit).Offset(offset).Find(&ideas).Error
	if err != nil {
		return nil, storageError(err)
	}
	return ideas, nil
}

func (r *ideaRepository) ListByStatus(ctx context.Context, status models.IdeaStatus, limit, offset int) ([]*models.Idea, error) {
	var ideas []*models.Idea
	err := boardOrder(r.applyIdeaDetails(readDB(r.db).WithContext(ctx)).Where("status = ?", status)).
		Limit(limit).Offset(offset).Find(&ideas).Error
	if err != nil {
		return nil, storageError(err)
	}
	return ideas, nil
}

func (r *ideaRepository) UpdateStatus(ctx context.Context, id uint, status models.IdeaStatus, reviewerID uint, notes string) (*models.Idea, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":                  status,
		"reviewed_by_identity_id": reviewerID,
		"reviewed_at":             now,
	}
	if notes != "" {
		updates["review_notes"] = notes
	}
	result := r.db.WithContext(ctx).Model(&models.Idea{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Idea", id)
	}
	cache.InvalidateIdea(ctx, id)
	cache.InvalidateListings(ctx)
	return r.GetByID(ctx, id)
}

func (r *ideaRepository) SetFeatured(ctx context.Context, id uint, featured bool, reviewerID uint) (*models.Idea, error) {
	// Featuring also moves the status so the badge and the lifecycle agree.
	status := models.IdeaStatusApproved
	if featured {
		status = models.IdeaStatusFeatured
	}
	result := r.db.WithContext(ctx).Model(&models.Idea{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_featured":             featured,
		"status":                  status,
		"reviewed_by_identity_id": reviewerID,
		"reviewed_at":             time.Now(),
	})
	if result.Error != nil {
		return nil, storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Idea", id)
	}
	cache.InvalidateIdea(ctx, id)
	cache.InvalidateListings(ctx)
	return r.GetByID(ctx, id)
}

func (r *ideaRepository) SoftDelete(ctx context.Context, id uint, deletedBy uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Idea{}).Where("id = ?", id).
			Update("deleted_by_identity_id", deletedBy)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Idea", id)
		}
		if err := tx.Delete(&models.Idea{}, id).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.Comment{}).
			Where("idea_id = ? AND is_deleted = ?", id, false).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"deleted_by": deletedBy,
				"deleted_at": now,
			}).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return storageError(err)
	}
	cache.InvalidateIdea(ctx, id)
	cache.InvalidateListings(ctx)
	return nil
}

func (r *ideaRepository) AddVote(ctx context.Context, ideaID uint, voterIP string, identityID *uint) (*models.Idea, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idea models.Idea
		if err := tx.First(&idea, ideaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Idea", ideaID)
			}
			return err
		}
		vote := models.Vote{IdeaID: ideaID, VoterIP: voterIP, IdentityID: identityID}
		if err := tx.Create(&vote).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("You have already voted for this idea")
			}
			return err
		}
		return tx.Model(&models.Idea{}).Where("id = ?", ideaID).
			Update("votes", gorm.Expr("votes + 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, storageError(err)
	}
	cache.InvalidateIdea(ctx, ideaID)
	cache.InvalidateListings(ctx)
	return r.GetByID(ctx, ideaID)
}

func (r *ideaRepository) HasVoted(ctx context.Context, ideaID uint, voterIP string) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Vote{}).
		Where("idea_id = ? AND voter_ip = ?", ideaID, voterIP).
		Count(&count).Error; err != nil {
		return false, storageError(err)
	}
	return count > 0, nil
}

func (r *ideaRepository) CountByStatus(ctx context.Context) (map[models.IdeaStatus]int64, error) {
	var rows []struct {
		Status models.IdeaStatus
		Count  int64
	}
	if err := readDB(r.db).WithContext(ctx).Model(&models.Idea{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, storageError(err)
	}
	counts := make(map[models.IdeaStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ideaRepository) CountVotes(ctx context.Context) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Vote{}).Count(&count).Error; err != nil {
		return 0, storageError(err)
	}
	return count, nil
}
