package models

import "time"

// Vote records a single vote on an idea. Uniqueness of (idea_id, voter_ip)
// is a hard database constraint, not application logic; the ledger is
// append-only and rows are never mutated or deleted.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IdeaID     uint      `gorm:"not null;uniqueIndex:idx_idea_voter" json:"idea_id"`
	Idea       *Idea     `gorm:"foreignKey:IdeaID" json:"-"`
	VoterIP    string    `gorm:"size:64;not null;uniqueIndex:idx_idea_voter" json:"-"`
	IdentityID *uint     `json:"identity_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
