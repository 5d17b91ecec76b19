package middleware

import (
	"log"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// sessionPreferenceKeys are the preferences a visitor may keep in the session.
var sessionPreferenceKeys = []string{
	constants.SettingLanguage,
	constants.SettingTheme,
	constants.SettingPerPage,
}

// Preferences resolves language, theme and page size for the request and
// stores both the scope and the result in the context. The ?lang= and
// ?per_page= query parameters apply to this response only.
func Preferences(settingsService *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := BuildPreferenceScope(c)

		prefs, err := settingsService.ResolvePreferences(c.Request.Context(), scope)
		if err != nil {
			log.Printf("[%s] Failed to resolve preferences, using defaults: %v", GetRequestID(c), err)
		}

		c.Set(constants.ContextKeyScope, scope)
		c.Set(constants.ContextKeyPrefs, prefs)
		c.Next()
	}
}

// BuildPreferenceScope collects the request, session and user sources the
// resolver consults.
func BuildPreferenceScope(c *gin.Context) services.PreferenceScope {
	scope := services.PreferenceScope{
		Overrides:      map[string]string{},
		Session:        map[string]string{},
		AcceptLanguage: c.GetHeader("Accept-Language"),
	}

	if lang := c.Query("lang"); lang != "" {
		scope.Overrides[constants.SettingLanguage] = lang
	}
	if perPage := c.Query("per_page"); perPage != "" {
		scope.Overrides[constants.SettingPerPage] = perPage
	}

	session := sessions.Default(c)
	for _, key := range sessionPreferenceKeys {
		switch v := session.Get(key).(type) {
		case string:
			scope.Session[key] = v
		case int:
			scope.Session[key] = strconv.Itoa(v)
		}
	}

	if userID, ok := GetUserID(c); ok {
		scope.UserID = &userID
	}
	return scope
}

// GetPreferenceScope returns the scope the Preferences middleware resolved
// against, building it fresh when the middleware did not run.
func GetPreferenceScope(c *gin.Context) services.PreferenceScope {
	if value, exists := c.Get(constants.ContextKeyScope); exists {
		if scope, ok := value.(services.PreferenceScope); ok {
			return scope
		}
	}
	return BuildPreferenceScope(c)
}

// GetPreferences returns the resolved preferences, or the defaults when the
// Preferences middleware did not run.
func GetPreferences(c *gin.Context) services.Preferences {
	if value, exists := c.Get(constants.ContextKeyPrefs); exists {
		if prefs, ok := value.(services.Preferences); ok {
			return prefs
		}
	}
	return services.Preferences{
		Theme:   constants.DefaultTheme,
		PerPage: constants.DefaultPageSize,
	}
}
