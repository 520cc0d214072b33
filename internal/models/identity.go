package models

import "time"

// Identity is a session-scoped principal. It is created lazily on first
// contact with role guest and is never deleted; only the role and
// last-activity timestamp are mutated.
type Identity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionToken string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Username     string    `gorm:"size:120;not null;default:'Anonymous'" json:"username"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'guest';index" json:"role"`
	IPAddress    string    `gorm:"size:64" json:"-"`
	UserAgent    string    `gorm:"size:255" json:"-"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// GuestIdentity returns a synthetic unpersisted guest identity. Used when
// the backing store is unavailable so read paths fail open.
func GuestIdentity(sessionToken string) *Identity {
	return &Identity{
		SessionToken: sessionToken,
		Username:     "Anonymous",
		Role:         RoleGuest,
		LastActivity: time.Now().UTC(),
	}
}
