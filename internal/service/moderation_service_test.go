package service

import (
	"context"
	"testing"

	"ideaboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_DeleteIdea(t *testing.T) {
	t.Parallel()

	t.Run("requires moderator", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopIdeaRepo(), noopCommentRepo())
		err := svc.DeleteIdea(context.Background(), DeleteIdeaInput{
			Identity: &models.Identity{ID: 7, Role: models.RoleContentManager},
			IdeaID:   1,
		})
		assertForbiddenError(t, err)
	})

	t.Run("moderator deletes with attribution", func(t *testing.T) {
		t.Parallel()
		ideaRepo := noopIdeaRepo()
		var gotDeletedBy uint
		ideaRepo.softDeleteFn = func(_ context.Context, _, deletedBy uint) error {
			gotDeletedBy = deletedBy
			return nil
		}
		svc := NewModerationService(ideaRepo, noopCommentRepo())
		err := svc.DeleteIdea(context.Background(), DeleteIdeaInput{
			Identity: &models.Identity{ID: 7, Role: models.RoleModerator},
			IdeaID:   1,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), gotDeletedBy)
	})

	t.Run("admin may delete", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopIdeaRepo(), noopCommentRepo())
		err := svc.DeleteIdea(context.Background(), DeleteIdeaInput{
			Identity: &models.Identity{ID: 7, Role: models.RoleAdmin},
			IdeaID:   1,
		})
		require.NoError(t, err)
	})

	t.Run("missing idea propagates not found", func(t *testing.T) {
		t.Parallel()
		ideaRepo := noopIdeaRepo()
		ideaRepo.softDeleteFn = func(_ context.Context, id, _ uint) error {
			return models.NewNotFoundError("Idea", id)
		}
		svc := NewModerationService(ideaRepo, noopCommentRepo())
		err := svc.DeleteIdea(context.Background(), DeleteIdeaInput{
			Identity: &models.Identity{ID: 7, Role: models.RoleModerator},
			IdeaID:   99,
		})
		assertNotFoundError(t, err)
	})
}

func TestModerationService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("requires moderator", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopIdeaRepo(), noopCommentRepo())
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{
			Identity:  &models.Identity{ID: 7, Role: models.RoleUser},
			CommentID: 1,
		})
		assertForbiddenError(t, err)
	})

	t.Run("moderator deletes", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(noopIdeaRepo(), noopCommentRepo())
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{
			Identity:  &models.Identity{ID: 7, Role: models.RoleModerator},
			CommentID: 1,
		})
		require.NoError(t, err)
	})
}

func TestModerationService_ListAllComments(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.listAllFn = func(_ context.Context, _, _ int) ([]*models.Comment, error) {
		return []*models.Comment{
			{ID: 1, Text: "live"},
			{ID: 2, Text: "deleted", IsDeleted: true},
		}, nil
	}
	svc := NewModerationService(noopIdeaRepo(), commentRepo)

	_, err := svc.ListAllComments(context.Background(), &models.Identity{ID: 7, Role: models.RoleGuest}, 50, 0)
	assertForbiddenError(t, err)

	comments, err := svc.ListAllComments(context.Background(), &models.Identity{ID: 7, Role: models.RoleModerator}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
