package models

import (
	"time"

	"gorm.io/gorm"
)

// IdeaStatus defines the workflow state of an idea. Soft deletion is not a
// status; it is tracked orthogonally via DeletedAt.
type IdeaStatus string

const (
	// IdeaStatusPending indicates the idea is awaiting review.
	IdeaStatusPending IdeaStatus = "pending"
	// IdeaStatusApproved indicates the idea is published.
	IdeaStatusApproved IdeaStatus = "approved"
	// IdeaStatusRejected indicates the idea was declined.
	IdeaStatusRejected IdeaStatus = "rejected"
	// IdeaStatusInProgress indicates the idea is being worked on.
	IdeaStatusInProgress IdeaStatus = "in_progress"
	// IdeaStatusCompleted indicates the idea has been implemented.
	IdeaStatusCompleted IdeaStatus = "completed"
	// IdeaStatusFeatured indicates the idea is pinned above the listing.
	IdeaStatusFeatured IdeaStatus = "featured"
)

// ReviewableStatuses are the statuses a content manager may assign directly.
// Featured is reachable only through the featured toggle.
var ReviewableStatuses = []IdeaStatus{
	IdeaStatusApproved,
	IdeaStatusRejected,
	IdeaStatusInProgress,
	IdeaStatusCompleted,
}

// Reviewable reports whether s may be assigned through a status change.
func (s IdeaStatus) Reviewable() bool {
	for _, v := range ReviewableStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PublicStatuses are the statuses visible to guest and user roles.
var PublicStatuses = []IdeaStatus{
	IdeaStatusApproved,
	IdeaStatusInProgress,
	IdeaStatusCompleted,
	IdeaStatusFeatured,
}

// VisibleStatusesFor returns the status filter the board applies for a
// role. Elevated roles see every non-deleted idea (nil means no filter).
func VisibleStatusesFor(r Role) []IdeaStatus {
	if r.Elevated() {
		return nil
	}
	return PublicStatuses
}

// VisibleTo reports whether the idea may be shown to the given role.
func (i *Idea) VisibleTo(r Role) bool {
	if r.Elevated() {
		return true
	}
	for _, s := range PublicStatuses {
		if i.Status == s {
			return true
		}
	}
	return false
}

// Idea represents a submitted improvement idea.
type Idea struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Title                string     `gorm:"size:300;not null" json:"title"`
	Description          string     `gorm:"type:text;not null" json:"description"`
	Author               string     `gorm:"size:120;not null;default:'Anonymous'" json:"author"`
	AuthorIdentityID     *uint      `gorm:"index" json:"author_identity_id,omitempty"`
	AuthorIdentity       *Identity  `gorm:"foreignKey:AuthorIdentityID" json:"-"`
	Status               IdeaStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	IsFeatured           bool       `gorm:"not null;default:false;index" json:"is_featured"`
	Votes                int        `gorm:"not null;default:0" json:"votes"`
	ReviewedByIdentityID *uint      `json:"reviewed_by_identity_id,omitempty"`
	ReviewedBy           *Identity  `gorm:"foreignKey:ReviewedByIdentityID" json:"-"`
	ReviewedAt           *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes          string     `gorm:"type:text" json:"review_notes,omitempty"`
	DeletedByIdentityID  *uint      `json:"-"`
	// CommentCount is not persisted; computed at query time over live comments
	CommentCount int `gorm:"->" json:"comment_count"`
	// VoteCount is not persisted; computed at query time from the vote ledger
	VoteCount int            `gorm:"->" json:"vote_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
