package database

import (
	"fmt"

	"photoshare/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Photo{},
		&models.Comment{},
		&models.SchemaInfo{},
	}
}

// Migrate brings the relational schema up to date with PersistentModels.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
