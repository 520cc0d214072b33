package service

import (
	"context"
	"log/slog"

	"ideaboard/internal/middleware"
	"ideaboard/internal/models"
	"ideaboard/internal/repository"
)

// ModerationService implements moderator removal of ideas and comments.
type ModerationService struct {
	ideaRepo    repository.IdeaRepository
	commentRepo repository.CommentRepository
}

// DeleteIdeaInput carries a moderator idea deletion.
type DeleteIdeaInput struct {
	Identity *models.Identity
	IdeaID   uint
}

// DeleteCommentInput carries a moderator comment deletion.
type DeleteCommentInput struct {
	Identity  *models.Identity
	CommentID uint
}

// NewModerationService returns a new ModerationService.
func NewModerationService(ideaRepo repository.IdeaRepository, commentRepo repository.CommentRepository) *ModerationService {
	return &ModerationService{
		ideaRepo:    ideaRepo,
		commentRepo: commentRepo,
	}
}

func requireModerator(identity *models.Identity) error {
	if identity == nil || !identity.Role.CanModerate() {
		return models.NewForbiddenError("Moderator role required")
	}
	return nil
}

// DeleteIdea soft-deletes an idea and cascades the deletion over its live
// comments. The idea row is kept for audit.
func (s *ModerationService) DeleteIdea(ctx context.Context, in DeleteIdeaInput) error {
	if err := requireModerator(in.Identity); err != nil {
		return err
	}
	if err := s.ideaRepo.SoftDelete(ctx, in.IdeaID, in.Identity.ID); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "Idea deleted by moderator",
		slog.Uint64("idea_id", uint64(in.IdeaID)),
		slog.Uint64("moderator_id", uint64(in.Identity.ID)))
	return nil
}

// DeleteComment soft-deletes a single comment. Repeat deletions of the same
// comment are no-ops.
func (s *ModerationService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := requireModerator(in.Identity); err != nil {
		return err
	}
	if err := s.commentRepo.SoftDelete(ctx, in.CommentID, in.Identity.ID); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "Comment deleted by moderator",
		slog.Uint64("comment_id", uint64(in.CommentID)),
		slog.Uint64("moderator_id", uint64(in.Identity.ID)))
	return nil
}

// ListAllComments returns every comment including deleted ones for the
// moderation dashboard.
func (s *ModerationService) ListAllComments(ctx context.Context, identity *models.Identity, limit, offset int) ([]*models.Comment, error) {
	if err := requireModerator(identity); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)
	return s.commentRepo.ListAll(ctx, limit, offset)
}
