package database

import "ideaboard/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Identity{},
		&models.InvitationCode{},
		&models.Idea{},
		&models.Comment{},
		&models.Vote{},
	}
}
