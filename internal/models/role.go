// Package models contains data structures for the application's domain models.
package models

// Role is the privilege level bound to an identity.
type Role string

const (
	// RoleGuest is the default role for a first-contact session.
	RoleGuest Role = "guest"
	// RoleUser is an ordinary authenticated visitor.
	RoleUser Role = "user"
	// RoleModerator may soft-delete ideas and comments.
	RoleModerator Role = "moderator"
	// RoleContentManager may change idea status and feature ideas.
	RoleContentManager Role = "content_manager"
	// RoleAdmin holds every capability.
	RoleAdmin Role = "admin"
)

// roleLevels defines the privilege partial order:
// guest < user < moderator == content_manager < admin.
var roleLevels = map[Role]int{
	RoleGuest:          0,
	RoleUser:           1,
	RoleModerator:      2,
	RoleContentManager: 2,
	RoleAdmin:          3,
}

// Valid reports whether r is a member of the closed role enumeration.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the numeric privilege level of the role. Unknown roles map
// to guest.
func (r Role) Level() int {
	if lvl, ok := roleLevels[r]; ok {
		return lvl
	}
	return roleLevels[RoleGuest]
}

// AtLeast reports whether r holds at least the privilege level of other.
func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

// CanModerate reports whether the role may delete ideas and comments.
// Moderator and content_manager share a level but not capabilities, so
// capability checks name the roles explicitly.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// CanManageContent reports whether the role may change idea status and
// toggle the featured flag.
func (r Role) CanManageContent() bool {
	return r == RoleContentManager || r == RoleAdmin
}

// Elevated reports whether the role was granted through an invitation code.
func (r Role) Elevated() bool {
	return r.Level() >= roleLevels[RoleModerator]
}

// GrantableRoles are the roles an invitation code may confer.
var GrantableRoles = []Role{RoleModerator, RoleContentManager, RoleAdmin}

// Grantable reports whether an invitation code may confer this role.
func (r Role) Grantable() bool {
	for _, g := range GrantableRoles {
		if r == g {
			return true
		}
	}
	return false
}
