package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/database"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Role").Create(user).Error; err != nil {
			return err
		}
		user.Role = models.Role{}
		return tx.First(&user.Role, user.RoleID).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users ordered by ID with optional pagination
func (r *GormUserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.WithContext(ctx).Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Preload("Role").Order("id ASC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(page, pageSize)))
	}

	if err := listQuery.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update saves a user inside a transaction and refuses to demote the last admin
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.User
		if err := tx.Preload("Role").First(&current, user.ID).Error; err != nil {
			return err
		}

		if current.Role.Name == constants.AdminRoleName && current.RoleID != user.RoleID {
			if err := ensureOtherAdmin(tx, user.ID); err != nil {
				return err
			}
		}

		if err := tx.Omit("Role").Save(user).Error; err != nil {
			return err
		}

		user.Role = models.Role{}
		return tx.First(&user.Role, user.RoleID).Error
	})
}

// Delete removes a user and their own settings inside a transaction and
// refuses to delete the last admin
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Preload("Role").First(&user, id).Error; err != nil {
			return err
		}

		if user.Role.Name == constants.AdminRoleName {
			if err := ensureOtherAdmin(tx, id); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Setting{}).Error; err != nil {
			return fmt.Errorf("failed to delete settings of user %d: %w", id, err)
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// ensureOtherAdmin locks the admin rows and fails unless an admin other than
// userID exists. Concurrent demotions and deletes queue on the lock.
func ensureOtherAdmin(tx *gorm.DB, userID uint64) error {
	var adminIDs []uint64
	err := tx.Model(&models.User{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", constants.AdminRoleName).
		Pluck("users.id", &adminIDs).Error
	if err != nil {
		return fmt.Errorf("failed to lock admins: %w", err)
	}
	for _, adminID := range adminIDs {
		if adminID != userID {
			return nil
		}
	}
	return ErrLastAdmin
}
