package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/constants"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/services"
	"github.com/yukikurage/todo-tracker/internal/utils"
)

// WebHandler serves the rendered pages.
type WebHandler struct {
	catalog         *i18n.Catalog
	authService     *services.AuthService
	taskService     *services.TaskService
	userService     *services.UserService
	roleService     *services.RoleService
	settingsService *services.SettingsService
}

// NewWebHandler creates a new WebHandler
func NewWebHandler(
	catalog *i18n.Catalog,
	authService *services.AuthService,
	taskService *services.TaskService,
	userService *services.UserService,
	roleService *services.RoleService,
	settingsService *services.SettingsService,
) *WebHandler {
	return &WebHandler{
		catalog:         catalog,
		authService:     authService,
		taskService:     taskService,
		userService:     userService,
		roleService:     roleService,
		settingsService: settingsService,
	}
}

// flashMessages maps expected service errors to interface messages.
var flashMessages = []struct {
	err error
	key string
}{
	{services.ErrInvalidCredentials, "auth.invalid_credentials"},
	{services.ErrUsernameTaken, "auth.username_taken"},
	{services.ErrEmailTaken, "auth.email_taken"},
	{services.ErrUserDuplicate, "auth.username_taken"},
	{services.ErrTitleRequired, "todo.title_required"},
	{services.ErrTaskNotFound, "todo.not_found"},
	{services.ErrUserNotFound, "user.not_found"},
	{services.ErrCannotDeleteSelf, "user.cannot_delete_self"},
	{services.ErrLastAdmin, "user.last_admin"},
	{services.ErrRoleNotFound, "role.not_found"},
	{services.ErrRoleRequired, "role.not_found"},
	{services.ErrRoleNameRequired, "role.name_required"},
	{services.ErrRoleNameTaken, "role.name_taken"},
	{services.ErrAdminRoleProtected, "role.cannot_delete_admin"},
	{services.ErrRoleInUse, "role.in_use"},
}

// render executes a page template with the data every page needs.
func (h *WebHandler) render(c *gin.Context, status int, name, titleKey string, data gin.H) {
	prefs := middleware.GetPreferences(c)
	if data == nil {
		data = gin.H{}
	}

	data["Title"] = titleKey
	data["Lang"] = prefs.Language
	data["Theme"] = prefs.Theme
	data["Languages"] = h.catalog.Supported()
	data["PageSizes"] = constants.AllowedPageSizes
	data["Flashes"] = utils.Flashes(c)
	if user, ok := middleware.GetCurrentUser(c); ok {
		data["User"] = user
		data["IsAdmin"] = user.Can(models.CapabilityAdmin)
	}

	c.HTML(status, name, data)
}

// tr translates key into the request language.
func (h *WebHandler) tr(c *gin.Context, key string, params ...string) string {
	return h.catalog.T(middleware.GetPreferences(c).Language, key, params...)
}

// flash queues a translated message.
func (h *WebHandler) flash(c *gin.Context, key string, params ...string) {
	utils.AddFlash(c, h.tr(c, key, params...))
}

// flashError queues the message for a failed operation.
func (h *WebHandler) flashError(c *gin.Context, err error) {
	utils.AddFlash(c, h.errorMessage(c, err))
}

// errorMessage translates an expected service error. Unexpected errors are
// logged and shown as a generic failure.
func (h *WebHandler) errorMessage(c *gin.Context, err error) string {
	if errors.Is(err, services.ErrPasswordTooShort) {
		return h.tr(c, "auth.password_too_short", strconv.Itoa(constants.MinPasswordLength))
	}
	for _, m := range flashMessages {
		if errors.Is(err, m.err) {
			return h.tr(c, m.key)
		}
	}
	if errors.Is(err, apierrors.ErrValidation) || errors.Is(err, apierrors.ErrConflict) {
		return h.tr(c, "error.invalid_input") + ": " + err.Error()
	}

	log.Printf("[%s] %s %s failed: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
	return h.tr(c, "error.internal")
}

// redirect answers 302 to path.
func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
}

// redirectBack returns to the referring page of this site, or the dashboard.
func redirectBack(c *gin.Context) {
	redirect(c, safeLocalURL(c.GetHeader("Referer"), c.Request.Host, "/dashboard"))
}

// safeLocalURL accepts relative paths and absolute URLs of host only.
func safeLocalURL(raw, host, fallback string) string {
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != host {
		return fallback
	}
	if u.Host == "" && (u.Scheme != "" || len(u.Path) == 0 || u.Path[0] != '/') {
		return fallback
	}
	u.Scheme, u.Host, u.User = "", "", nil
	if len(u.Path) > 1 && u.Path[1] == '/' {
		return fallback
	}
	return u.RequestURI()
}

// pathID reads the :id parameter of a rendered route; a bad id is a 404.
func (h *WebHandler) pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusNotFound, "404 page not found")
		return 0, false
	}
	return id, true
}

// loadFailed answers 404 for a missing record and otherwise flashes the
// error and goes back.
func (h *WebHandler) loadFailed(c *gin.Context, err error, back string) {
	if errors.Is(err, apierrors.ErrNotFound) {
		c.String(http.StatusNotFound, h.errorMessage(c, err))
		return
	}
	h.flashError(c, err)
	redirect(c, back)
}
