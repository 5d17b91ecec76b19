package constants

import "time"

// Session and context keys
const (
	SessionCookieName   = "todo_session"
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "current_user"
	ContextKeyPrefs     = "preferences"
	ContextKeyScope     = "preference_scope"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
	HeaderRequestedWith = "X-Requested-With"
)

// Authentication
const (
	MinPasswordLength = 6
	DefaultRoleName   = "user"
	AdminRoleName     = "admin"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// AllowedPageSizes lists the page sizes a user may choose.
var AllowedPageSizes = []int{5, 10, 25, 50, 100}

// Preference names and the category they are stored under
const (
	SettingLanguage     = "language"
	SettingTheme        = "theme"
	SettingPerPage      = "per_page"
	CategoryUserSetting = "user_settings"
)

// Themes
const (
	ThemeLight   = "light"
	ThemeDark    = "dark"
	DefaultTheme = ThemeLight
)

// AI
const (
	MaxAIGeneratedTasks = 20
	AIRequestTimeout    = 30 * time.Second
)
