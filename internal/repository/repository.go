package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/todo-tracker/internal/models"
)

var (
	// ErrLastAdmin is returned when a change would leave no user holding the admin role.
	ErrLastAdmin = errors.New("repository: last admin")
	// ErrRoleInUse is returned when deleting a role that is still assigned to users.
	ErrRoleInUse = errors.New("repository: role in use")
	// ErrProtectedRole is returned when deleting a built-in role.
	ErrProtectedRole = errors.New("repository: protected role")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update saves every field of a task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Completed     *bool
	SortByDueDate bool
	Page          int
	PageSize      int
}

// UserRepository defines the interface for user data access.
// Users are always returned with their Role loaded.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users ordered by ID with optional pagination
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)

	// Update saves a user. Fails with ErrLastAdmin when the change removes
	// the last admin.
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user. Fails with ErrLastAdmin when the user is the
	// last admin.
	Delete(ctx context.Context, id uint64) error
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *models.Role) error

	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uint64) (*models.Role, error)

	// FindByName finds a role by name
	FindByName(ctx context.Context, name string) (*models.Role, error)

	// List retrieves all roles
	List(ctx context.Context) ([]models.Role, error)

	// Update saves a role
	Update(ctx context.Context, role *models.Role) error

	// Delete removes a role that is neither protected nor assigned
	Delete(ctx context.Context, id uint64) error
}

// SettingRepository defines the interface for setting data access
type SettingRepository interface {
	// Create creates a new setting
	Create(ctx context.Context, setting *models.Setting) error

	// FindByID finds a setting by ID
	FindByID(ctx context.Context, id uint64) (*models.Setting, error)

	// Find finds the setting identified by (name, userID, category).
	// A nil userID matches global settings only.
	Find(ctx context.Context, name string, userID *uint64, category string) (*models.Setting, error)

	// List retrieves settings matching the filter
	List(ctx context.Context, filter SettingFilter) ([]models.Setting, error)

	// Update saves a setting
	Update(ctx context.Context, setting *models.Setting) error

	// Delete removes a setting
	Delete(ctx context.Context, id uint64) error

	// Upsert updates the value and description of the row identified by the
	// setting's (Name, UserID, Category), or inserts it, in one transaction
	Upsert(ctx context.Context, setting *models.Setting) error
}

// SettingFilter holds filtering options for listing settings
type SettingFilter struct {
	Category   *string
	UserID     *uint64
	GlobalOnly bool
}
