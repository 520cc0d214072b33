// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"ideaboard/internal/cache"
	"ideaboard/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListByIdea returns live comments for an idea, oldest first.
	ListByIdea(ctx context.Context, ideaID uint) ([]*models.Comment, error)
	// ListAll returns every comment including soft-deleted ones, for the
	// moderation view.
	ListAll(ctx context.Context, limit, offset int) ([]*models.Comment, error)
	SoftDelete(ctx context.Context, id uint, deletedBy uint) error
	CountLive(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return storageError(err)
	}
	cache.Invalidate(ctx, cache.IdeaCommentsKey(comment.IdeaID))
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := readDB(r.db).WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, storageError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByIdea(ctx context.Context, ideaID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := readDB(r.db).WithContext(ctx).
		Where("idea_id = ? AND is_deleted = ?", ideaID, false).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, storageError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := readDB(r.db).WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, storageError(err)
	}
	return comments, nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id uint, deletedBy uint) error {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.IsDeleted {
		// Deleting an already-deleted comment is a no-op.
		return nil
	}
	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_by": deletedBy,
			"deleted_at": now,
		}).Error; err != nil {
		return storageError(err)
	}
	cache.Invalidate(ctx, cache.IdeaCommentsKey(comment.IdeaID))
	return nil
}

func (r *commentRepository) CountLive(ctx context.Context) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Comment{}).
		Where("is_deleted = ?", false).
		Count(&count).Error; err != nil {
		return 0, storageError(err)
	}
	return count, nil
}
