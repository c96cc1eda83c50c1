package adapters

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the auth tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate auth tables: %w", err)
	}
	return nil
}
