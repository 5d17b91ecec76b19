package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/services"
	"github.com/yukikurage/todo-tracker/internal/testutil"
	"gorm.io/gorm"
)

// testEnv holds services backed by one in-memory database.
type testEnv struct {
	db       *gorm.DB
	catalog  *i18n.Catalog
	auth     *services.AuthService
	tasks    *services.TaskService
	users    *services.UserService
	roles    *services.RoleService
	settings *services.SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	catalog := testutil.NewCatalog(t)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	return &testEnv{
		db:       db,
		catalog:  catalog,
		auth:     services.NewAuthService(userRepo, roleRepo),
		tasks:    services.NewTaskService(repository.NewTaskRepository(db)),
		users:    services.NewUserService(userRepo, roleRepo),
		roles:    services.NewRoleService(roleRepo),
		settings: services.NewSettingsService(repository.NewSettingRepository(db), catalog),
	}
}

// newRouter returns an engine with a cookie session store installed.
func newRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	return r
}

// asUser stands in for LoadUser with a fixed account.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func jsonRequest(t *testing.T, method, url string, payload interface{}) *http.Request {
	t.Helper()

	if payload == nil {
		return httptest.NewRequest(method, url, nil)
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
