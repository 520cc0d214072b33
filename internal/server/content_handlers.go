// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ideaboard/internal/models"
	"ideaboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPendingIdeas handles GET /api/content/ideas/pending
// @Summary List ideas awaiting review
// @Tags content
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Idea
// @Failure 403 {object} models.ErrorResponse
// @Router /content/ideas/pending [get]
func (s *Server) GetPendingIdeas(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)
	identity := s.currentIdentity(c)

	ideas, err := s.ideaService.ListPending(ctx, identity, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(ideas)
}

// UpdateIdeaStatus handles PUT /api/content/ideas/:id/status
// @Summary Move an idea through the review workflow
// @Tags content
// @Accept json
// @Produce json
// @Param id path int true "Idea ID"
// @Param request body object{status=string,notes=string} true "Review decision"
// @Success 200 {object} models.Idea
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /content/ideas/{id}/status [put]
func (s *Server) UpdateIdeaStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	idea, err := s.ideaService.SetStatus(ctx, service.SetStatusInput{
		Identity: identity,
		IdeaID:   id,
		Status:   models.IdeaStatus(req.Status),
		Notes:    req.Notes,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(idea)
}

// SetIdeaFeatured handles PUT /api/content/ideas/:id/featured
// @Summary Toggle the featured flag on an idea
// @Tags content
// @Accept json
// @Produce json
// @Param id path int true "Idea ID"
// @Param request body object{featured=bool} true "Featured flag"
// @Success 200 {object} models.Idea
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /content/ideas/{id}/featured [put]
func (s *Server) SetIdeaFeatured(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	var req struct {
		Featured bool `json:"featured"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	idea, err := s.ideaService.SetFeatured(ctx, service.SetFeaturedInput{
		Identity: identity,
		IdeaID:   id,
		Featured: req.Featured,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(idea)
}
