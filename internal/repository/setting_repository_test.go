package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const lockedSettingQuery = "SELECT \\* FROM `settings` WHERE .* FOR UPDATE"

var settingColumns = []string{"id", "name", "description", "user_id", "category", "value"}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestSettingUpsert_UpdatesLockedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db)
	userID := uint64(7)

	mock.ExpectBegin()
	mock.ExpectQuery(lockedSettingQuery).
		WillReturnRows(sqlmock.NewRows(settingColumns).AddRow(3, "theme", "", 7, "user_settings", "light"))
	mock.ExpectExec("UPDATE `settings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	setting := &models.Setting{Name: "theme", Value: "dark", UserID: &userID, Category: constants.CategoryUserSetting}
	require.NoError(t, repo.Upsert(context.Background(), setting))

	assert.Equal(t, uint64(3), setting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingUpsert_InsertsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lockedSettingQuery).
		WillReturnRows(sqlmock.NewRows(settingColumns))
	mock.ExpectExec("INSERT INTO `settings`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	setting := &models.Setting{Name: "language", Value: "ru", Category: constants.CategoryUserSetting}
	require.NoError(t, repo.Upsert(context.Background(), setting))

	assert.Equal(t, uint64(5), setting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingUpsert_RetriesLostInsertRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db)
	userID := uint64(7)

	mock.ExpectBegin()
	mock.ExpectQuery(lockedSettingQuery).
		WillReturnRows(sqlmock.NewRows(settingColumns))
	mock.ExpectExec("INSERT INTO `settings`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(lockedSettingQuery).
		WillReturnRows(sqlmock.NewRows(settingColumns).AddRow(9, "per_page", "", 7, "user_settings", "25"))
	mock.ExpectExec("UPDATE `settings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	setting := &models.Setting{Name: "per_page", Value: "50", UserID: &userID, Category: constants.CategoryUserSetting}
	require.NoError(t, repo.Upsert(context.Background(), setting))

	assert.Equal(t, uint64(9), setting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingUniqueIndex(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice", constants.DefaultRoleName)

	first := &models.Setting{Name: "theme", Value: "dark", UserID: &user.ID, Category: constants.CategoryUserSetting}
	require.NoError(t, db.Create(first).Error)

	second := &models.Setting{Name: "theme", Value: "light", UserID: &user.ID, Category: constants.CategoryUserSetting}
	err := db.Create(second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSettingList_Filters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "alice", constants.DefaultRoleName)

	require.NoError(t, repo.Upsert(ctx, &models.Setting{Name: "theme", Value: "dark", Category: constants.CategoryUserSetting}))
	require.NoError(t, repo.Upsert(ctx, &models.Setting{Name: "theme", Value: "light", UserID: &user.ID, Category: constants.CategoryUserSetting}))
	require.NoError(t, repo.Upsert(ctx, &models.Setting{Name: "motd", Value: "hi", Category: "site"}))

	category := constants.CategoryUserSetting
	all, err := repo.List(ctx, SettingFilter{Category: &category})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	global, err := repo.List(ctx, SettingFilter{GlobalOnly: true})
	require.NoError(t, err)
	assert.Len(t, global, 2)

	own, err := repo.List(ctx, SettingFilter{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "light", own[0].Value)
}
