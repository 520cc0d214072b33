// Package seed provides database seeding for invitation codes and demo data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ideaboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoOptions configure the demo-data factory.
type DemoOptions struct {
	NumIdeas       int
	MaxCommentsPer int
	MaxVotesPer    int
	// MaxDays spreads created_at timestamps over the past N days.
	MaxDays     int
	ShouldClean bool
}

// Factory builds demo board content and persists it to the database.
// Intended for development and testing only.
type Factory struct {
	db   *gorm.DB
	opts DemoOptions
	rng  *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts DemoOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.NumIdeas <= 0 {
		opts.NumIdeas = 25
	}
	if opts.MaxCommentsPer <= 0 {
		opts.MaxCommentsPer = 5
	}
	if opts.MaxVotesPer <= 0 {
		opts.MaxVotesPer = 20
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var demoStatuses = []models.IdeaStatus{
	models.IdeaStatusPending,
	models.IdeaStatusApproved,
	models.IdeaStatusApproved,
	models.IdeaStatusInProgress,
	models.IdeaStatusCompleted,
	models.IdeaStatusRejected,
}

// BuildIdea constructs an idea without persisting it.
func (f *Factory) BuildIdea() *models.Idea {
	status := demoStatuses[f.rng.Intn(len(demoStatuses))]
	idea := &models.Idea{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Author:      gofakeit.FirstName(),
		Status:      status,
	}

	// realistic created_at spread
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	idea.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if status != models.IdeaStatusPending {
		reviewedAt := idea.CreatedAt.Add(time.Duration(1+f.rng.Intn(72)) * time.Hour)
		idea.ReviewedAt = &reviewedAt
		if status == models.IdeaStatusRejected {
			idea.ReviewNotes = gofakeit.Sentence(8)
		}
	}

	return idea
}

// CreateIdea persists a freshly built idea with comments and votes.
func (f *Factory) CreateIdea() (*models.Idea, error) {
	idea := f.BuildIdea()
	if err := f.db.Create(idea).Error; err != nil {
		return nil, err
	}

	if idea.Status != models.IdeaStatusPending {
		if err := f.addVotes(idea); err != nil {
			return nil, err
		}
		if err := f.addComments(idea); err != nil {
			return nil, err
		}
	}

	return idea, nil
}

func (f *Factory) addVotes(idea *models.Idea) error {
	n := f.rng.Intn(f.opts.MaxVotesPer + 1)
	for i := 0; i < n; i++ {
		vote := &models.Vote{
			IdeaID: idea.ID,
			// One vote per address per idea; distinct synthetic
			// addresses keep the ledger constraint satisfied.
			VoterIP:   fmt.Sprintf("203.0.113.%d", i),
			CreatedAt: idea.CreatedAt.Add(time.Duration(f.rng.Intn(96)) * time.Hour),
		}
		if err := f.db.Create(vote).Error; err != nil {
			return err
		}
	}
	return f.db.Model(idea).Update("votes", n).Error
}

func (f *Factory) addComments(idea *models.Idea) error {
	n := f.rng.Intn(f.opts.MaxCommentsPer + 1)
	for i := 0; i < n; i++ {
		comment := &models.Comment{
			IdeaID:    idea.ID,
			Author:    gofakeit.FirstName(),
			Text:      gofakeit.Sentence(12),
			CreatedAt: idea.CreatedAt.Add(time.Duration(f.rng.Intn(96)) * time.Hour),
		}
		if err := f.db.Create(comment).Error; err != nil {
			return err
		}
	}
	return nil
}

// Demo populates the board with generated ideas, comments, and votes.
func Demo(db *gorm.DB, opts DemoOptions) error {
	log.Printf("🌱 Seeding %d demo ideas...", opts.NumIdeas)

	if opts.ShouldClean {
		if err := clearDemoData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)
	for i := 0; i < f.opts.NumIdeas; i++ {
		if _, err := f.CreateIdea(); err != nil {
			return fmt.Errorf("failed to create demo idea: %w", err)
		}
	}

	log.Printf("✓ %d demo ideas created", f.opts.NumIdeas)
	return nil
}

func clearDemoData(db *gorm.DB) error {
	// Votes and comments reference ideas; delete children first.
	if err := db.Exec("DELETE FROM votes").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM comments").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM ideas").Error
}
