package service

import (
	"context"
	"strings"

	"ideaboard/internal/cache"
	"ideaboard/internal/models"
	"ideaboard/internal/repository"
)

const (
	minCommentLen = 2
	maxCommentLen = 5000
)

// CommentService implements commenting on ideas.
type CommentService struct {
	commentRepo repository.CommentRepository
	ideaRepo    repository.IdeaRepository
}

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	Identity *models.Identity
	IdeaID   uint
	Text     string
	Author   string
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, ideaRepo repository.IdeaRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		ideaRepo:    ideaRepo,
	}
}

// CreateComment validates and stores a comment on a visible idea.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	role := models.RoleGuest
	if in.Identity != nil {
		role = in.Identity.Role
	}

	idea, err := s.ideaRepo.GetByID(ctx, in.IdeaID)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(role) {
		return nil, models.NewNotFoundError("Idea", in.IdeaID)
	}

	text := strings.TrimSpace(in.Text)
	if len(text) < minCommentLen {
		return nil, models.NewValidationError("Comment must be at least 2 characters")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = "Anonymous"
	}

	comment := &models.Comment{
		IdeaID: in.IdeaID,
		Text:   text,
		Author: author,
	}
	if in.Identity != nil && in.Identity.ID != 0 {
		id := in.Identity.ID
		comment.AuthorIdentityID = &id
		if author == "Anonymous" && in.Identity.Username != "" {
			comment.Author = in.Identity.Username
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns live comments for a visible idea, oldest first.
func (s *CommentService) ListComments(ctx context.Context, ideaID uint, role models.Role) ([]*models.Comment, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(role) {
		return nil, models.NewNotFoundError("Idea", ideaID)
	}

	var comments []*models.Comment
	err = cache.Aside(ctx, cache.IdeaCommentsKey(ideaID), &comments, cache.CommentsTTL, func() error {
		var loadErr error
		comments, loadErr = s.commentRepo.ListByIdea(ctx, ideaID)
		return loadErr
	})
	return comments, err
}
