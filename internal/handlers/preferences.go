package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// SetLanguage switches the interface language. Unsupported languages are
// logged and ignored.
func (h *WebHandler) SetLanguage(c *gin.Context) {
	lang := c.Param("lang")
	status := "success"
	if err := h.settingsService.ValidateLanguage(lang); err != nil {
		log.Printf("[%s] Invalid language requested: %s", middleware.GetRequestID(c), lang)
		status = "ignored"
	} else {
		h.storePreference(c, constants.SettingLanguage, lang, "setting.language")
	}

	h.preferenceResponse(c, gin.H{"status": status, "language": lang})
}

// SetTheme switches the interface theme. Unknown themes are ignored.
func (h *WebHandler) SetTheme(c *gin.Context) {
	theme := c.Param("theme")
	status := "ignored"
	if h.settingsService.ValidateTheme(theme) == nil {
		h.storePreference(c, constants.SettingTheme, theme, "setting.theme")
		status = "success"
	}

	h.preferenceResponse(c, gin.H{"status": status, "theme": theme})
}

// SetPagination stores the page size. Sizes outside the allowed set are ignored.
func (h *WebHandler) SetPagination(c *gin.Context) {
	raw := c.Param("per_page")
	status := "ignored"
	perPage, err := h.settingsService.ValidatePerPage(raw)
	if err == nil {
		h.storePreference(c, constants.SettingPerPage, strconv.Itoa(perPage), "setting.per_page")
		status = "success"
	}

	h.preferenceResponse(c, gin.H{"status": status, "per_page": raw})
}

// storePreference keeps the value in the session and, for a signed-in
// user, in their own settings row.
func (h *WebHandler) storePreference(c *gin.Context, name, value, descriptionKey string) {
	session := sessions.Default(c)
	session.Set(name, value)
	if err := session.Save(); err != nil {
		log.Printf("[%s] Failed to save %s in session: %v", middleware.GetRequestID(c), name, err)
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return
	}
	_, err := h.settingsService.SetOption(c.Request.Context(), services.SetOptionInput{
		Name:        name,
		Value:       value,
		Description: h.tr(c, descriptionKey),
		UserID:      &userID,
		Category:    constants.CategoryUserSetting,
	})
	if err != nil {
		log.Printf("[%s] Failed to store %s for user %d: %v", middleware.GetRequestID(c), name, userID, err)
	}
}

// preferenceResponse answers AJAX requests with JSON and sends everyone
// else back where they came from.
func (h *WebHandler) preferenceResponse(c *gin.Context, body gin.H) {
	if c.GetHeader(constants.HeaderRequestedWith) == "XMLHttpRequest" {
		c.JSON(http.StatusOK, body)
		return
	}
	redirectBack(c)
}
