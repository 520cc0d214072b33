// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ideaboard/internal/models"
	"ideaboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetIdeas handles GET /api/ideas
// @Summary List ideas visible to the current role
// @Tags ideas
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Idea
// @Router /ideas [get]
func (s *Server) GetIdeas(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)
	identity := s.currentIdentity(c)

	ideas, err := s.ideaService.List(ctx, service.ListIdeasInput{
		Role:   identity.Role,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(ideas)
}

// SubmitIdea handles POST /api/ideas
// @Summary Submit a new idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body object{title=string,description=string,author=string} true "Idea submission"
// @Success 201 {object} models.Idea
// @Failure 400 {object} models.ErrorResponse
// @Router /ideas [post]
func (s *Server) SubmitIdea(c *fiber.Ctx) error {
	ctx := c.UserContext()
	identity := s.currentIdentity(c)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	idea, err := s.ideaService.Submit(ctx, service.SubmitIdeaInput{
		Identity:    identity,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(idea)
}

// GetIdea handles GET /api/ideas/:id
// @Summary Get a single idea
// @Tags ideas
// @Produce json
// @Param id path int true "Idea ID"
// @Success 200 {object} models.Idea
// @Failure 404 {object} models.ErrorResponse
// @Router /ideas/{id} [get]
func (s *Server) GetIdea(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	idea, err := s.ideaService.Get(ctx, id, identity.Role)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(idea)
}

// VoteIdea handles POST /api/ideas/:id/vote
// @Summary Vote for an idea
// @Description Records one vote per address per idea
// @Tags ideas
// @Produce json
// @Param id path int true "Idea ID"
// @Success 200 {object} models.Idea
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /ideas/{id}/vote [post]
func (s *Server) VoteIdea(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	idea, err := s.ideaService.Vote(ctx, service.VoteInput{
		Identity: identity,
		IdeaID:   id,
		VoterIP:  c.IP(),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(idea)
}

// GetIdeaComments handles GET /api/ideas/:id/comments
// @Summary List live comments on an idea
// @Tags comments
// @Produce json
// @Param id path int true "Idea ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /ideas/{id}/comments [get]
func (s *Server) GetIdeaComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	comments, err := s.commentService.ListComments(ctx, id, identity.Role)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comments)
}

// CreateIdeaComment handles POST /api/ideas/:id/comments
// @Summary Comment on an idea
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Idea ID"
// @Param request body object{text=string,author=string} true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ideas/{id}/comments [post]
func (s *Server) CreateIdeaComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	identity := s.currentIdentity(c)

	var req struct {
		Text   string `json:"text"`
		Author string `json:"author,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		Identity: identity,
		IdeaID:   id,
		Text:     req.Text,
		Author:   req.Author,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
