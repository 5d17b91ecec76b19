package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"gorm.io/gorm"
)

const (
	maxRoleNameLength        = 50
	maxRoleDescriptionLength = 200
)

var (
	ErrRoleNotFound           = apierrors.New(apierrors.ErrNotFound, "role not found")
	ErrRoleNameRequired       = apierrors.New(apierrors.ErrValidation, fmt.Sprintf("role name must be 1 to %d characters", maxRoleNameLength))
	ErrRoleDescriptionTooLong = apierrors.New(apierrors.ErrValidation, fmt.Sprintf("role description must be at most %d characters", maxRoleDescriptionLength))
	ErrRoleNameTaken          = apierrors.New(apierrors.ErrConflict, "role with this name already exists")
	ErrAdminRoleProtected     = apierrors.New(apierrors.ErrConflict, "can't delete or rename admin role")
	ErrRoleInUse              = apierrors.New(apierrors.ErrConflict, "can't delete role that is assigned to users")
)

// RoleService handles role management
type RoleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// RoleInput holds role fields. Nil fields keep their value on update.
type RoleInput struct {
	Name        *string
	Description *string
}

// ListRoles returns every role ordered by ID
func (s *RoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// GetRole returns a role by ID
func (s *RoleService) GetRole(ctx context.Context, id uint64) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return role, nil
}

// CreateRole stores a new role with a unique name
func (s *RoleService) CreateRole(ctx context.Context, input RoleInput) (*models.Role, error) {
	if input.Name == nil {
		return nil, ErrRoleNameRequired
	}
	name, err := normalizeRoleName(*input.Name)
	if err != nil {
		return nil, err
	}

	role := &models.Role{Name: name}
	if input.Description != nil {
		role.Description = strings.TrimSpace(*input.Description)
	}
	if utf8.RuneCountInString(role.Description) > maxRoleDescriptionLength {
		return nil, ErrRoleDescriptionTooLong
	}

	if err := s.ensureNameFree(ctx, 0, name); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// UpdateRole applies the provided fields to a role. The admin role keeps its name.
func (s *RoleService) UpdateRole(ctx context.Context, id uint64, input RoleInput) (*models.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := normalizeRoleName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != role.Name {
			if role.Name == constants.AdminRoleName {
				return nil, ErrAdminRoleProtected
			}
			if err := s.ensureNameFree(ctx, role.ID, name); err != nil {
				return nil, err
			}
			role.Name = name
		}
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if utf8.RuneCountInString(description) > maxRoleDescriptionLength {
			return nil, ErrRoleDescriptionTooLong
		}
		role.Description = description
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

// DeleteRole removes a role that is not admin and not assigned to anyone
func (s *RoleService) DeleteRole(ctx context.Context, id uint64) error {
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrRoleNotFound
		case errors.Is(err, repository.ErrProtectedRole):
			return ErrAdminRoleProtected
		case errors.Is(err, repository.ErrRoleInUse):
			return ErrRoleInUse
		default:
			return fmt.Errorf("failed to delete role: %w", err)
		}
	}
	return nil
}

func (s *RoleService) ensureNameFree(ctx context.Context, selfID uint64, name string) error {
	existing, err := s.roleRepo.FindByName(ctx, name)
	if err == nil {
		if existing.ID != selfID {
			return ErrRoleNameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check role name: %w", err)
	}
	return nil
}

func normalizeRoleName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxRoleNameLength {
		return "", ErrRoleNameRequired
	}
	return name, nil
}
