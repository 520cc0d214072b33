// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ideaboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/stats
// @Summary Board-wide statistics
// @Tags stats
// @Produce json
// @Success 200 {object} service.BoardStats
// @Router /stats [get]
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.GetStats(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(stats)
}
