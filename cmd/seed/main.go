// Command main runs the database seeder for the idea board.
package main

import (
	"context"
	"flag"
	"log"

	"ideaboard/internal/config"
	"ideaboard/internal/database"
	"ideaboard/internal/seed"
)

func main() {
	// Parse command line flags
	numIdeas := flag.Int("ideas", 25, "Number of demo ideas to create")
	maxComments := flag.Int("comments", 5, "Maximum comments per idea")
	maxVotes := flag.Int("votes", 20, "Maximum votes per idea")
	shouldClean := flag.Bool("clean", true, "Clean board content before seeding")
	demo := flag.Bool("demo", false, "Also generate demo board content")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Invitations(context.Background(), db, cfg); err != nil {
		log.Fatalf("❌ Invitation code seeding failed: %v", err)
	}

	if *demo {
		if err := seed.Demo(db, seed.DemoOptions{
			NumIdeas:       *numIdeas,
			MaxCommentsPer: *maxComments,
			MaxVotesPer:    *maxVotes,
			ShouldClean:    *shouldClean,
		}); err != nil {
			log.Fatalf("❌ Demo seeding failed: %v", err)
		}
	}

	log.Println("✅ Seeding complete")
}
