package models

import "time"

// Comment represents a comment on an idea. Comments are only ever
// soft-deleted: IsDeleted flips and the deleting moderator is stamped,
// the row itself is kept for audit.
type Comment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	IdeaID           uint       `gorm:"not null;index" json:"idea_id"`
	Idea             *Idea      `gorm:"foreignKey:IdeaID" json:"-"`
	Author           string     `gorm:"size:120;not null;default:'Anonymous'" json:"author"`
	AuthorIdentityID *uint      `json:"author_identity_id,omitempty"`
	Text             string     `gorm:"type:text;not null" json:"text"`
	IsDeleted        bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedBy        *uint      `json:"deleted_by,omitempty"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
