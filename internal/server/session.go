// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"ideaboard/internal/middleware"
	"ideaboard/internal/models"
	"ideaboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionMiddleware resolves the session cookie to an identity and stores it
// in locals. A missing or unknown cookie yields a fresh guest identity and a
// new cookie; the request never fails here, storage outages degrade to an
// unpersisted guest.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, created := s.identityService.Resolve(c.UserContext(), service.ResolveInput{
			SessionToken: c.Cookies(s.config.SessionCookieName),
			IP:           c.IP(),
			UserAgent:    c.Get("User-Agent"),
		})

		if created {
			s.setSessionCookie(c, identity.SessionToken)
		}

		c.Locals("identity", identity)
		c.Locals("identityID", identity.ID)
		c.Locals("role", string(identity.Role))

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.IdentityIDKey, identity.ID)
		ctx = context.WithValue(ctx, middleware.RoleKey, string(identity.Role))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	maxAgeDays := s.config.SessionMaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = 30
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeDays * 24 * 60 * 60,
		Expires:  time.Now().AddDate(0, 0, maxAgeDays),
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// currentIdentity returns the identity resolved by SessionMiddleware.
// Falls back to a synthetic guest when the middleware did not run, so
// handlers exercised in isolation still behave.
func (s *Server) currentIdentity(c *fiber.Ctx) *models.Identity {
	if identity, ok := c.Locals("identity").(*models.Identity); ok && identity != nil {
		return identity
	}
	return models.GuestIdentity("")
}

// ModeratorRequired returns middleware that rejects identities without
// moderation capability with 403. Must be placed after SessionMiddleware.
func (s *Server) ModeratorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := s.currentIdentity(c)
		if !identity.Role.CanModerate() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Moderator access required"))
		}
		return c.Next()
	}
}

// ContentManagerRequired returns middleware that rejects identities without
// content-management capability with 403. Must be placed after SessionMiddleware.
func (s *Server) ContentManagerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := s.currentIdentity(c)
		if !identity.Role.CanManageContent() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Content manager access required"))
		}
		return c.Next()
	}
}
