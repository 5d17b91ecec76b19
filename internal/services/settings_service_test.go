package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/testutil"
	"gorm.io/gorm"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *SettingsService
	user    *models.User
	ctx     context.Context
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewSettingsService(repository.NewSettingRepository(suite.db), testutil.NewCatalog(suite.T()))
	suite.user = testutil.CreateUser(suite.T(), suite.db, "alice", constants.DefaultRoleName)
	suite.ctx = context.Background()
}

func (suite *SettingsServiceTestSuite) set(name, value string, userID *uint64) {
	_, err := suite.service.SetOption(suite.ctx, SetOptionInput{
		Name:     name,
		Value:    value,
		UserID:   userID,
		Category: constants.CategoryUserSetting,
	})
	suite.Require().NoError(err)
}

func (suite *SettingsServiceTestSuite) resolve(scope PreferenceScope, name, fallback string) string {
	value, err := suite.service.Resolve(suite.ctx, scope, name, constants.CategoryUserSetting, fallback)
	suite.Require().NoError(err)
	return value
}

func (suite *SettingsServiceTestSuite) TestResolve_Precedence() {
	userID := suite.user.ID
	scope := PreferenceScope{UserID: &userID}

	suite.Equal("fallback", suite.resolve(scope, constants.SettingTheme, "fallback"))

	suite.set(constants.SettingTheme, constants.ThemeLight, nil)
	suite.Equal(constants.ThemeLight, suite.resolve(scope, constants.SettingTheme, "fallback"))

	suite.set(constants.SettingTheme, constants.ThemeDark, &userID)
	suite.Equal(constants.ThemeDark, suite.resolve(scope, constants.SettingTheme, "fallback"))

	scope.Session = map[string]string{constants.SettingTheme: "session"}
	suite.Equal("session", suite.resolve(scope, constants.SettingTheme, "fallback"))

	scope.Overrides = map[string]string{constants.SettingTheme: "override"}
	suite.Equal("override", suite.resolve(scope, constants.SettingTheme, "fallback"))
}

func (suite *SettingsServiceTestSuite) TestResolve_OtherUsersRowIgnored() {
	bob := testutil.CreateUser(suite.T(), suite.db, "bob", constants.DefaultRoleName)
	suite.set(constants.SettingLanguage, "ru", &bob.ID)

	userID := suite.user.ID
	suite.Equal("en", suite.resolve(PreferenceScope{UserID: &userID}, constants.SettingLanguage, "en"))
}

func (suite *SettingsServiceTestSuite) TestResolve_EmptyValueIsMiss() {
	userID := suite.user.ID
	scope := PreferenceScope{
		UserID:  &userID,
		Session: map[string]string{constants.SettingLanguage: ""},
	}
	suite.set(constants.SettingLanguage, "ru", nil)

	suite.Equal("ru", suite.resolve(scope, constants.SettingLanguage, "en"))
}

func (suite *SettingsServiceTestSuite) TestSetOption_WriteThenResolve() {
	userID := suite.user.ID
	suite.set(constants.SettingPerPage, "25", &userID)

	suite.Equal("25", suite.resolve(PreferenceScope{UserID: &userID}, constants.SettingPerPage, "10"))
}

func (suite *SettingsServiceTestSuite) TestSetOption_Idempotent() {
	userID := suite.user.ID
	suite.set(constants.SettingLanguage, "ru", &userID)
	suite.set(constants.SettingLanguage, "en", &userID)

	var rows []models.Setting
	suite.Require().NoError(suite.db.Where("name = ? AND user_id = ?", constants.SettingLanguage, userID).Find(&rows).Error)
	suite.Require().Len(rows, 1)
	suite.Equal("en", rows[0].Value)
}

func (suite *SettingsServiceTestSuite) TestSetOption_GlobalIdempotent() {
	suite.set(constants.SettingTheme, constants.ThemeDark, nil)
	suite.set(constants.SettingTheme, constants.ThemeLight, nil)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Setting{}).Where("name = ? AND user_id IS NULL", constants.SettingTheme).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *SettingsServiceTestSuite) TestSetOption_Validation() {
	_, err := suite.service.SetOption(suite.ctx, SetOptionInput{
		Name:     constants.SettingLanguage,
		Value:    "de",
		Category: constants.CategoryUserSetting,
	})
	suite.ErrorIs(err, ErrInvalidLanguage)

	_, err = suite.service.SetOption(suite.ctx, SetOptionInput{
		Name:     constants.SettingPerPage,
		Value:    "999",
		Category: constants.CategoryUserSetting,
	})
	suite.ErrorIs(err, ErrInvalidPerPage)

	_, err = suite.service.SetOption(suite.ctx, SetOptionInput{Name: " "})
	suite.ErrorIs(err, ErrSettingNameRequired)

	// Other categories are free-form
	_, err = suite.service.SetOption(suite.ctx, SetOptionInput{
		Name:     constants.SettingPerPage,
		Value:    "999",
		Category: "reports",
	})
	suite.NoError(err)
}

func (suite *SettingsServiceTestSuite) TestResolvePreferences_Defaults() {
	prefs, err := suite.service.ResolvePreferences(suite.ctx, PreferenceScope{AcceptLanguage: "ru-RU,ru;q=0.9,en;q=0.8"})
	suite.Require().NoError(err)
	suite.Equal("ru", prefs.Language)
	suite.Equal(constants.DefaultTheme, prefs.Theme)
	suite.Equal(constants.DefaultPageSize, prefs.PerPage)
}

func (suite *SettingsServiceTestSuite) TestResolvePreferences_InvalidPerPageFallsBack() {
	prefs, err := suite.service.ResolvePreferences(suite.ctx, PreferenceScope{
		Overrides: map[string]string{constants.SettingPerPage: "999"},
	})
	suite.Require().NoError(err)
	suite.Equal(10, prefs.PerPage)
}

func (suite *SettingsServiceTestSuite) TestResolvePreferences_InvalidCandidateSkipped() {
	userID := suite.user.ID
	suite.set(constants.SettingPerPage, "50", &userID)

	prefs, err := suite.service.ResolvePreferences(suite.ctx, PreferenceScope{
		UserID:    &userID,
		Overrides: map[string]string{constants.SettingPerPage: "999"},
		Session:   map[string]string{constants.SettingLanguage: "xx", constants.SettingTheme: "neon"},
	})
	suite.Require().NoError(err)
	suite.Equal(50, prefs.PerPage)
	suite.Equal("en", prefs.Language)
	suite.Equal(constants.DefaultTheme, prefs.Theme)
}

func (suite *SettingsServiceTestSuite) TestOptionCRUD() {
	userID := suite.user.ID
	created, err := suite.service.CreateOption(suite.ctx, SetOptionInput{
		Name:     "greeting",
		Value:    "hello",
		UserID:   &userID,
		Category: "misc",
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateOption(suite.ctx, SetOptionInput{
		Name:     "greeting",
		Value:    "again",
		UserID:   &userID,
		Category: "misc",
	})
	suite.ErrorIs(err, ErrSettingDuplicate)

	value := "hi"
	updated, err := suite.service.UpdateOption(suite.ctx, created.ID, UpdateOptionInput{Value: &value, ClearUserID: true})
	suite.Require().NoError(err)
	suite.Equal("hi", updated.Value)
	suite.Nil(updated.UserID)
	suite.Equal("greeting", updated.Name)

	suite.Require().NoError(suite.service.DeleteOption(suite.ctx, created.ID))
	_, err = suite.service.GetOption(suite.ctx, created.ID)
	suite.ErrorIs(err, ErrSettingNotFound)
	suite.ErrorIs(suite.service.DeleteOption(suite.ctx, created.ID), ErrSettingNotFound)
}

func (suite *SettingsServiceTestSuite) TestListOptions_GlobalOnly() {
	userID := suite.user.ID
	suite.set(constants.SettingTheme, constants.ThemeDark, nil)
	suite.set(constants.SettingTheme, constants.ThemeLight, &userID)

	options, err := suite.service.ListOptions(suite.ctx, repository.SettingFilter{GlobalOnly: true})
	suite.Require().NoError(err)
	suite.Require().Len(options, 1)
	suite.Equal(constants.ThemeDark, options[0].Value)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
