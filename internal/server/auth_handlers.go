// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ideaboard/internal/models"
	"ideaboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RedeemInvitation handles POST /api/auth/redeem
// @Summary Redeem an invitation code
// @Description Redeems an invitation code and elevates the session's role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{code=string,username=string} true "Redemption request"
// @Success 200 {object} models.Identity
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/redeem [post]
func (s *Server) RedeemInvitation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	identity := s.currentIdentity(c)

	var req struct {
		Code     string `json:"code"`
		Username string `json:"username,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	elevated, err := s.identityService.RedeemCode(ctx, service.RedeemCodeInput{
		Identity: identity,
		Code:     req.Code,
		Username: req.Username,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(elevated)
}

// GetMe handles GET /api/auth/me
// @Summary Get the current session identity
// @Tags auth
// @Produce json
// @Success 200 {object} models.Identity
// @Router /auth/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	return c.JSON(s.currentIdentity(c))
}

// Logout handles POST /api/auth/logout
// @Summary Log out the current session
// @Description Resets the session's role to guest and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	// Downgrade the stored role first: replaying the old cookie after
	// logout must resolve as a guest, not as the elevated identity.
	if err := s.identityService.Logout(c.UserContext(), s.currentIdentity(c)); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}
