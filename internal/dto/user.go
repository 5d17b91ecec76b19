package dto

import (
	"time"

	"github.com/yukikurage/todo-tracker/internal/models"
)

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RoleID    uint64    `json:"role_id"`
	Role      *RoleDTO  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the body of POST /api/users/
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required"`
	RoleID   uint64 `json:"role_id" binding:"required"`
}

// UpdateUserRequest is the body of PUT /api/users/:id
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=64"`
	Email    *string `json:"email" binding:"omitempty,email,max=120"`
	Password *string `json:"password"`
	RoleID   *uint64 `json:"role_id"`
}

// RoleRequest is the body of POST and PUT /api/roles/
type RoleRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role) RoleDTO {
	return RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
	}
}

// ToRoleDTOs converts a slice of roles
func ToRoleDTOs(roles []models.Role) []RoleDTO {
	items := make([]RoleDTO, len(roles))
	for i, role := range roles {
		items[i] = ToRoleDTO(role)
	}
	return items
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		RoleID:    user.RoleID,
		CreatedAt: user.CreatedAt,
	}

	// Include role if preloaded
	if user.Role.ID != 0 {
		role := ToRoleDTO(user.Role)
		dto.Role = &role
	}

	return dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}
