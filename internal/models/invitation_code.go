package models

import "time"

// InvitationCode is a shared secret that grants a role on redemption.
// Codes are stored uppercase and matched case-insensitively. A code is
// never deleted, only deactivated.
type InvitationCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Role      Role       `gorm:"type:varchar(20);not null" json:"role"`
	CreatedBy string     `gorm:"size:120;not null;default:'system'" json:"created_by"`
	UsedBy    *string    `gorm:"size:64" json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	MaxUses   int        `gorm:"not null;default:1" json:"max_uses"`
	UseCount  int        `gorm:"not null;default:0" json:"use_count"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// Redeemable reports whether the code can still be redeemed at the given
// instant. The repository enforces the same predicate atomically; this is
// the read-side view.
func (c *InvitationCode) Redeemable(now time.Time) bool {
	return c.IsActive && c.UseCount < c.MaxUses && now.Before(c.ExpiresAt)
}
