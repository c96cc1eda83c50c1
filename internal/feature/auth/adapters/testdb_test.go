package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auth_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database with every auth table.
// A single connection keeps the in-memory database alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db), "failed to migrate tables")
	return db
}

// seedUser creates a test user in the database.
func seedUser(t *testing.T, db *gorm.DB, id, email, phone string, createdAt time.Time) *entity.User {
	t.Helper()

	u := &entity.User{
		ID:           id,
		Name:         "user " + id,
		Email:        email,
		Phone:        phone,
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		IsActive:     true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, db.Create(u).Error, "failed to seed user")
	return u
}
