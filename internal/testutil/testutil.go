// Package testutil provides helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/database"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword is the password of every user created by CreateUser.
const TestPassword = "supersecret"

// NewDB opens a migrated in-memory sqlite database with the built-in roles.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Setup(db))
	return db
}

// NewCatalog returns a catalog for English and Russian with English as default.
func NewCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()

	catalog, err := i18n.NewCatalog("en", []string{"en", "ru"})
	require.NoError(t, err)
	return catalog
}

// Role returns a seeded role by name.
func Role(t *testing.T, db *gorm.DB, name string) models.Role {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", name).First(&role).Error)
	return role
}

// CreateUser stores a user with TestPassword and the named role.
func CreateUser(t *testing.T, db *gorm.DB, username, roleName string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		RoleID:       Role(t, db, roleName).ID,
	}
	require.NoError(t, db.Omit("Role").Create(user).Error)
	require.NoError(t, db.Preload("Role").First(user, user.ID).Error)
	return user
}

// CreateAdmin stores a user with the admin role.
func CreateAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	return CreateUser(t, db, username, constants.AdminRoleName)
}
