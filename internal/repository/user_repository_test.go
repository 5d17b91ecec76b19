package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/testutil"
)

const lockedAdminsQuery = "SELECT `users`.`id` FROM `users` JOIN roles ON roles.id = users.role_id WHERE roles.name = \\? FOR UPDATE"

var (
	userColumns = []string{"id", "username", "email", "password_hash", "role_id", "created_at"}
	roleColumns = []string{"id", "name", "description"}
)

func TestUserDelete_KeepsLastAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := testutil.CreateAdmin(t, db, "root")
	second := testutil.CreateAdmin(t, db, "deputy")

	require.NoError(t, repo.Delete(ctx, second.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrLastAdmin)

	_, err := repo.FindByID(ctx, first.ID)
	assert.NoError(t, err, "failed delete must roll back")
}

func TestUserUpdate_ReloadsRole(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateAdmin(t, db, "root")
	user := testutil.CreateUser(t, db, "alice", constants.DefaultRoleName)
	admin := testutil.Role(t, db, constants.AdminRoleName)

	user.RoleID = admin.ID
	require.NoError(t, repo.Update(ctx, user))
	assert.Equal(t, constants.AdminRoleName, user.Role.Name)
}

func TestRoleDelete_Guards(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	admin := testutil.Role(t, db, constants.AdminRoleName)
	assert.ErrorIs(t, repo.Delete(ctx, admin.ID), ErrProtectedRole)

	testutil.CreateUser(t, db, "alice", constants.DefaultRoleName)
	userRole := testutil.Role(t, db, constants.DefaultRoleName)
	assert.ErrorIs(t, repo.Delete(ctx, userRole.ID), ErrRoleInUse)
}

func TestUserDelete_RemovesOwnSettings(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", constants.DefaultRoleName)
	bob := testutil.CreateUser(t, db, "bob", constants.DefaultRoleName)
	require.NoError(t, db.Create(&[]models.Setting{
		{Name: constants.SettingTheme, Value: "dark", UserID: &alice.ID, Category: constants.CategoryUserSetting},
		{Name: constants.SettingTheme, Value: "light", UserID: &bob.ID, Category: constants.CategoryUserSetting},
		{Name: constants.SettingLanguage, Value: "ru", Category: constants.CategoryUserSetting},
	}).Error)

	require.NoError(t, repo.Delete(ctx, bob.ID))

	var left []models.Setting
	require.NoError(t, db.Order("id").Find(&left).Error)
	require.Len(t, left, 2)
	assert.Equal(t, alice.ID, *left[0].UserID)
	assert.Nil(t, left[1].UserID, "global rows stay")
}

func TestUserDelete_LocksAdminsBeforeWriting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(2, "deputy", "deputy@example.com", "hash", 1, now))
	mock.ExpectQuery("SELECT \\* FROM `roles`").
		WillReturnRows(sqlmock.NewRows(roleColumns).AddRow(1, constants.AdminRoleName, ""))
	mock.ExpectQuery(lockedAdminsQuery).
		WithArgs(constants.AdminRoleName).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectExec("DELETE FROM `settings` WHERE user_id = \\?").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete_LastAdminWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "root", "root@example.com", "hash", 1, time.Now()))
	mock.ExpectQuery("SELECT \\* FROM `roles`").
		WillReturnRows(sqlmock.NewRows(roleColumns).AddRow(1, constants.AdminRoleName, ""))
	// the other admin was removed by a transaction that held the lock first
	mock.ExpectQuery(lockedAdminsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), ErrLastAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdate_LastAdminDemotionRefused(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	root := testutil.CreateAdmin(t, db, "root")
	userRole := testutil.Role(t, db, constants.DefaultRoleName)

	root.RoleID = userRole.ID
	assert.ErrorIs(t, repo.Update(ctx, root), ErrLastAdmin)

	reloaded, err := repo.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.AdminRoleName, reloaded.Role.Name)
}
