// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ideaboard/internal/models"
	"ideaboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DeleteIdea handles DELETE /api/moderator/ideas/:id
// @Summary Soft-delete an idea and its comments
// @Tags moderation
// @Produce json
// @Param id path int true "Idea ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /moderator/ideas/{id} [delete]
func (s *Server) DeleteIdea(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	if err := s.moderationService.DeleteIdea(ctx, service.DeleteIdeaInput{
		Identity: identity,
		IdeaID:   id,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteComment handles DELETE /api/moderator/comments/:id
// @Summary Soft-delete a comment
// @Tags moderation
// @Produce json
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /moderator/comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	if err := s.moderationService.DeleteComment(ctx, service.DeleteCommentInput{
		Identity:  identity,
		CommentID: id,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAllComments handles GET /api/moderator/comments
// @Summary List every comment including deleted ones
// @Tags moderation
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Router /moderator/comments [get]
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)
	identity := s.currentIdentity(c)

	comments, err := s.moderationService.ListAllComments(ctx, identity, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comments)
}
