package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	maxEmailLength    = 120
)

var (
	ErrUserNotFound         = apierrors.New(apierrors.ErrNotFound, "user not found")
	ErrUsernameRequired     = apierrors.New(apierrors.ErrValidation, fmt.Sprintf("username must be %d to %d characters", minUsernameLength, maxUsernameLength))
	ErrInvalidEmail         = apierrors.New(apierrors.ErrValidation, "a valid email is required")
	ErrPasswordTooShort     = apierrors.New(apierrors.ErrValidation, fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	ErrRoleRequired         = apierrors.New(apierrors.ErrValidation, "role does not exist")
	ErrUsernameTaken        = apierrors.New(apierrors.ErrConflict, "user with this username already exists")
	ErrEmailTaken           = apierrors.New(apierrors.ErrConflict, "user with this email already exists")
	ErrCannotDeleteSelf     = apierrors.New(apierrors.ErrConflict, "can't delete yourself")
	ErrLastAdmin            = apierrors.New(apierrors.ErrConflict, "at least one administrator must remain")
	ErrUserDuplicate        = apierrors.New(apierrors.ErrConflict, "user with this username or email already exists")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles account management
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	RoleID   uint64
}

// UpdateUserInput represents input for updating a user. Nil fields keep
// their stored value; an empty password keeps the current one.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	RoleID   *uint64
}

// ListUsers returns users ordered by ID. A non-positive page size lists all.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUser validates and stores a new account. Duplicates are rejected.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if err := s.ensureRoleExists(ctx, input.RoleID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, 0, username, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       input.RoleID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser applies the provided fields to a user
func (s *UserService) UpdateUser(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	username, email := user.Username, user.Email
	if input.Username != nil {
		if username, err = normalizeUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if email, err = normalizeEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if err := s.ensureUnique(ctx, user.ID, username, email); err != nil {
		return nil, err
	}
	user.Username = username
	user.Email = email

	if input.Password != nil && *input.Password != "" {
		if utf8.RuneCountInString(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if input.RoleID != nil && *input.RoleID != user.RoleID {
		if err := s.ensureRoleExists(ctx, *input.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *input.RoleID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrLastAdmin):
			return nil, ErrLastAdmin
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrUserDuplicate
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return user, nil
}

// DeleteUser removes the account id on behalf of actorID. Nobody can delete
// their own account, and the last admin is kept.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uint64) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrUserNotFound
		case errors.Is(err, repository.ErrLastAdmin):
			return ErrLastAdmin
		default:
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}
	return nil
}

func (s *UserService) ensureRoleExists(ctx context.Context, roleID uint64) error {
	if roleID == 0 {
		return ErrRoleRequired
	}
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleRequired
		}
		return fmt.Errorf("failed to find role: %w", err)
	}
	return nil
}

// ensureUnique rejects a username or email held by an account other than selfID.
func (s *UserService) ensureUnique(ctx context.Context, selfID uint64, username, email string) error {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		if existing.ID != selfID {
			return ErrUsernameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		if existing.ID != selfID {
			return ErrEmailTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	return nil
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return "", ErrUsernameRequired
	}
	return username, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}
