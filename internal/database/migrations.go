package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/models"
	"gorm.io/gorm"
)

// defaultRoles are created on startup when missing.
var defaultRoles = []models.Role{
	{Name: constants.AdminRoleName, Description: "Administrator"},
	{Name: constants.DefaultRoleName, Description: "Regular user"},
}

// SeedDefaults makes sure the built-in roles exist.
func SeedDefaults(db *gorm.DB) error {
	for _, role := range defaultRoles {
		r := role
		result := db.Where(models.Role{Name: r.Name}).
			Attrs(models.Role{Description: r.Description}).
			FirstOrCreate(&r)
		if result.Error != nil {
			return fmt.Errorf("failed to seed role %s: %w", r.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			log.Printf("Created role %s", r.Name)
		}
	}
	return nil
}

// Setup runs migrations and seeding in one step.
func Setup(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	return SeedDefaults(db)
}
