// Package seed provides database seeding for invitation codes and demo data.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ideaboard/internal/config"
	"ideaboard/internal/models"
	"ideaboard/internal/repository"

	"gorm.io/gorm"
)

// Invitations ensures the configured invitation codes exist, one per
// elevated role. Existing codes keep their use counts; an empty configured
// code skips that role.
func Invitations(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	repo := repository.NewInvitationRepository(db)

	ttlDays := cfg.InviteCodeTTLDays
	if ttlDays <= 0 {
		ttlDays = 365
	}
	maxUses := cfg.InviteCodeMaxUses
	if maxUses <= 0 {
		maxUses = 1
	}
	expiresAt := time.Now().AddDate(0, 0, ttlDays)

	codes := []struct {
		code string
		role models.Role
	}{
		{cfg.SeedModeratorCode, models.RoleModerator},
		{cfg.SeedContentManagerCode, models.RoleContentManager},
		{cfg.SeedAdminCode, models.RoleAdmin},
	}

	seeded := 0
	for _, c := range codes {
		// Codes are stored uppercase; redemption uppercases its input.
		code := strings.ToUpper(strings.TrimSpace(c.code))
		if code == "" {
			continue
		}
		if err := repo.EnsureSeeded(ctx, &models.InvitationCode{
			Code:      code,
			Role:      c.role,
			CreatedBy: "system",
			MaxUses:   maxUses,
			ExpiresAt: expiresAt,
			IsActive:  true,
		}); err != nil {
			return fmt.Errorf("failed to seed %s invitation code: %w", c.role, err)
		}
		seeded++
	}

	log.Printf("✓ %d invitation codes ensured", seeded)
	return nil
}
