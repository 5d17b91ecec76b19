package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrSettingNotFound     = apierrors.New(apierrors.ErrNotFound, "option not found")
	ErrSettingNameRequired = apierrors.New(apierrors.ErrValidation, "name is required")
	ErrInvalidLanguage     = apierrors.New(apierrors.ErrValidation, "unsupported language")
	ErrInvalidTheme        = apierrors.New(apierrors.ErrValidation, "unsupported theme")
	ErrInvalidPerPage      = apierrors.New(apierrors.ErrValidation, "unsupported page size")
	ErrSettingDuplicate    = apierrors.New(apierrors.ErrConflict, "option with this name, user and category already exists")
)

// PreferenceScope carries everything the resolver may consult for one request.
// Overrides hold values pinned for this request only and are never persisted.
type PreferenceScope struct {
	Overrides      map[string]string
	Session        map[string]string
	UserID         *uint64
	AcceptLanguage string
}

// Preferences are the resolved interface preferences of a request.
type Preferences struct {
	Language string
	Theme    string
	PerPage  int
}

// SettingsService resolves and stores preferences and exposes setting CRUD.
type SettingsService struct {
	settingRepo repository.SettingRepository
	catalog     *i18n.Catalog
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingRepo repository.SettingRepository, catalog *i18n.Catalog) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		catalog:     catalog,
	}
}

// Resolve returns the effective value of a preference. The first hit wins:
// request override, session, the user's own row, the global row, fallback.
// Empty values count as misses.
func (s *SettingsService) Resolve(ctx context.Context, scope PreferenceScope, name, category, fallback string) (string, error) {
	found := fallback
	err := s.walk(ctx, scope, name, category, func(value string) bool {
		found = value
		return true
	})
	return found, err
}

// ResolvePreferences resolves language, theme and page size. Candidates that
// are not valid for their preference are skipped, so a bad value in the
// session or store never reaches the page.
func (s *SettingsService) ResolvePreferences(ctx context.Context, scope PreferenceScope) (Preferences, error) {
	prefs := Preferences{
		Language: s.catalog.Negotiate(scope.AcceptLanguage),
		Theme:    constants.DefaultTheme,
		PerPage:  constants.DefaultPageSize,
	}

	err := s.walk(ctx, scope, constants.SettingLanguage, constants.CategoryUserSetting, func(value string) bool {
		if s.catalog.IsSupported(value) {
			prefs.Language = value
			return true
		}
		return false
	})
	if err != nil {
		return prefs, err
	}

	err = s.walk(ctx, scope, constants.SettingTheme, constants.CategoryUserSetting, func(value string) bool {
		if IsValidTheme(value) {
			prefs.Theme = value
			return true
		}
		return false
	})
	if err != nil {
		return prefs, err
	}

	err = s.walk(ctx, scope, constants.SettingPerPage, constants.CategoryUserSetting, func(value string) bool {
		n, err := strconv.Atoi(value)
		if err == nil && utils.IsAllowedPageSize(n) {
			prefs.PerPage = n
			return true
		}
		return false
	})
	return prefs, err
}

// walk feeds candidate values to accept in precedence order until accept
// returns true. Store rows are only read when the cheaper sources miss.
func (s *SettingsService) walk(ctx context.Context, scope PreferenceScope, name, category string, accept func(string) bool) error {
	if v := scope.Overrides[name]; v != "" && accept(v) {
		return nil
	}
	if v := scope.Session[name]; v != "" && accept(v) {
		return nil
	}

	owners := []*uint64{nil}
	if scope.UserID != nil {
		owners = []*uint64{scope.UserID, nil}
	}
	for _, owner := range owners {
		setting, err := s.settingRepo.Find(ctx, name, owner, category)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load setting %s: %w", name, err)
		}
		if setting.Value != "" && accept(setting.Value) {
			return nil
		}
	}
	return nil
}

// SetOptionInput identifies the row to upsert and its new content.
type SetOptionInput struct {
	Name        string
	Value       string
	Description string
	UserID      *uint64
	Category    string
}

// SetOption upserts the setting identified by (name, user, category).
// Known interface preferences are validated before anything is written.
func (s *SettingsService) SetOption(ctx context.Context, input SetOptionInput) (*models.Setting, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSettingNameRequired
	}
	if input.Category == constants.CategoryUserSetting {
		if err := s.validatePreference(name, input.Value); err != nil {
			return nil, err
		}
	}

	setting := &models.Setting{
		Name:        name,
		Value:       input.Value,
		Description: input.Description,
		UserID:      input.UserID,
		Category:    input.Category,
	}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to store option %s: %w", name, err)
	}
	return setting, nil
}

// ValidateLanguage rejects languages outside the supported set.
func (s *SettingsService) ValidateLanguage(lang string) error {
	if !s.catalog.IsSupported(lang) {
		return ErrInvalidLanguage
	}
	return nil
}

// ValidateTheme rejects unknown themes.
func (s *SettingsService) ValidateTheme(theme string) error {
	if !IsValidTheme(theme) {
		return ErrInvalidTheme
	}
	return nil
}

// ValidatePerPage rejects page sizes outside the selectable set.
func (s *SettingsService) ValidatePerPage(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || !utils.IsAllowedPageSize(n) {
		return 0, ErrInvalidPerPage
	}
	return n, nil
}

func (s *SettingsService) validatePreference(name, value string) error {
	switch name {
	case constants.SettingLanguage:
		return s.ValidateLanguage(value)
	case constants.SettingTheme:
		return s.ValidateTheme(value)
	case constants.SettingPerPage:
		_, err := s.ValidatePerPage(value)
		return err
	}
	return nil
}

// IsValidTheme reports whether theme is a known interface theme.
func IsValidTheme(theme string) bool {
	return theme == constants.ThemeLight || theme == constants.ThemeDark
}

// ListOptions returns stored settings matching the filter
func (s *SettingsService) ListOptions(ctx context.Context, filter repository.SettingFilter) ([]models.Setting, error) {
	settings, err := s.settingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	return settings, nil
}

// GetOption returns a setting by ID
func (s *SettingsService) GetOption(ctx context.Context, id uint64) (*models.Setting, error) {
	setting, err := s.settingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to find option: %w", err)
	}
	return setting, nil
}

// CreateOption inserts a new setting. A second row for the same
// (name, user, category) is a conflict; use SetOption to overwrite.
func (s *SettingsService) CreateOption(ctx context.Context, input SetOptionInput) (*models.Setting, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSettingNameRequired
	}
	if input.Category == constants.CategoryUserSetting {
		if err := s.validatePreference(name, input.Value); err != nil {
			return nil, err
		}
	}

	if _, err := s.settingRepo.Find(ctx, name, input.UserID, input.Category); err == nil {
		return nil, ErrSettingDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check option: %w", err)
	}

	setting := &models.Setting{
		Name:        name,
		Value:       input.Value,
		Description: input.Description,
		UserID:      input.UserID,
		Category:    input.Category,
	}
	if err := s.settingRepo.Create(ctx, setting); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSettingDuplicate
		}
		return nil, fmt.Errorf("failed to create option: %w", err)
	}
	return setting, nil
}

// UpdateOptionInput holds the fields to change. Nil fields keep their value.
// ClearUserID turns a user-scoped row into a global one.
type UpdateOptionInput struct {
	Name        *string
	Value       *string
	Description *string
	UserID      *uint64
	ClearUserID bool
	Category    *string
}

// UpdateOption applies the provided fields to a setting
func (s *SettingsService) UpdateOption(ctx context.Context, id uint64, input UpdateOptionInput) (*models.Setting, error) {
	setting, err := s.GetOption(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrSettingNameRequired
		}
		setting.Name = name
	}
	if input.Value != nil {
		setting.Value = *input.Value
	}
	if input.Description != nil {
		setting.Description = *input.Description
	}
	if input.ClearUserID {
		setting.UserID = nil
	} else if input.UserID != nil {
		userID := *input.UserID
		setting.UserID = &userID
	}
	if input.Category != nil {
		setting.Category = *input.Category
	}

	if setting.Category == constants.CategoryUserSetting {
		if err := s.validatePreference(setting.Name, setting.Value); err != nil {
			return nil, err
		}
	}

	if err := s.settingRepo.Update(ctx, setting); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSettingDuplicate
		}
		return nil, fmt.Errorf("failed to update option: %w", err)
	}
	return setting, nil
}

// DeleteOption removes a setting
func (s *SettingsService) DeleteOption(ctx context.Context, id uint64) error {
	if err := s.settingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return fmt.Errorf("failed to delete option: %w", err)
	}
	return nil
}
