// Package bootstrap wires up runtime dependencies for the application.
package bootstrap

import (
	"context"
	"fmt"

	"ideaboard/internal/cache"
	"ideaboard/internal/config"
	"ideaboard/internal/database"
	"ideaboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedInvitations ensures the configured invitation codes exist.
	SeedInvitations bool
	// SeedDemoData populates the board with generated content.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally runs built-in seeding.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedInvitations {
		if err := seed.Invitations(ctx, db, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to seed invitation codes: %w", err)
		}
	}

	if opts.SeedDemoData {
		if err := seed.Demo(db, seed.DemoOptions{}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
