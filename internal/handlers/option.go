package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/dto"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// OptionHandler serves the JSON settings API. Admins see and edit every
// row; other users see global rows and manage their own.
type OptionHandler struct {
	settingsService *services.SettingsService
}

// NewOptionHandler creates a new OptionHandler
func NewOptionHandler(settingsService *services.SettingsService) *OptionHandler {
	return &OptionHandler{settingsService: settingsService}
}

// ListOptions returns stored options, optionally filtered by ?category=
// @Summary List options
// @Tags options
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} dto.OptionDTO
// @Failure 401 {object} apierrors.APIError
// @Router /options [get]
func (h *OptionHandler) ListOptions(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var category *string
	if value, exists := c.GetQuery("category"); exists {
		category = &value
	}

	ctx := c.Request.Context()
	var (
		settings []models.Setting
		err      error
	)
	if user.Can(models.CapabilityAdmin) {
		settings, err = h.settingsService.ListOptions(ctx, repository.SettingFilter{Category: category})
	} else {
		var global, own []models.Setting
		global, err = h.settingsService.ListOptions(ctx, repository.SettingFilter{Category: category, GlobalOnly: true})
		if err == nil {
			own, err = h.settingsService.ListOptions(ctx, repository.SettingFilter{Category: category, UserID: &user.ID})
		}
		settings = append(global, own...)
	}
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondList(c, dto.ToOptionDTOs(settings), int64(len(settings)))
}

// ResolveOption returns the value of ?name= the caller would get right now:
// request override, session, own row, global row, then ?default=.
// @Summary Resolve an option
// @Tags options
// @Produce json
// @Param name query string true "Option name"
// @Param category query string false "Option category"
// @Param default query string false "Value when nothing is set"
// @Success 200 {object} dto.ResolvedOptionDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Router /options/resolve [get]
func (h *OptionHandler) ResolveOption(c *gin.Context) {
	var query dto.ResolveOptionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	scope := middleware.GetPreferenceScope(c)
	value, err := h.settingsService.Resolve(c.Request.Context(), scope, query.Name, query.Category, query.Default)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedOptionDTO{
		Name:     query.Name,
		Category: query.Category,
		Value:    value,
	})
}

// GetOption returns an option by ID
// @Summary Get an option
// @Tags options
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.OptionDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /options/{id} [get]
func (h *OptionHandler) GetOption(c *gin.Context) {
	setting, ok := h.loadVisible(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToOptionDTO(*setting))
}

// CreateOption stores a new option. Non-admins always create their own rows.
// @Summary Create an option
// @Tags options
// @Accept json
// @Produce json
// @Param request body dto.CreateOptionRequest true "Option"
// @Success 201 {object} dto.OptionDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /options [post]
func (h *OptionHandler) CreateOption(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if !user.Can(models.CapabilityAdmin) {
		if req.UserID != nil && *req.UserID != user.ID {
			apierrors.Forbidden(c, "Options of other users require administrator rights")
			return
		}
		req.UserID = &user.ID
	}

	setting, err := h.settingsService.CreateOption(c.Request.Context(), services.SetOptionInput{
		Name:        req.Name,
		Value:       req.Value,
		Description: req.Description,
		UserID:      req.UserID,
		Category:    req.Category,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOptionDTO(*setting))
}

// UpdateOption applies the fields present in the body
// @Summary Update an option
// @Tags options
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param request body dto.UpdateOptionRequest true "Fields to change"
// @Success 200 {object} dto.OptionDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /options/{id} [put]
func (h *OptionHandler) UpdateOption(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	setting, ok := h.loadWritable(c, user)
	if !ok {
		return
	}

	var req dto.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := services.UpdateOptionInput{
		Name:        req.Name,
		Value:       req.Value,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.UserID.Set {
		if !user.Can(models.CapabilityAdmin) && (req.UserID.Value == nil || *req.UserID.Value != user.ID) {
			apierrors.Forbidden(c, "Options of other users require administrator rights")
			return
		}
		input.UserID = req.UserID.Value
		input.ClearUserID = req.UserID.Value == nil
	}

	updated, err := h.settingsService.UpdateOption(c.Request.Context(), setting.ID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOptionDTO(*updated))
}

// DeleteOption removes an option
// @Summary Delete an option
// @Tags options
// @Produce json
// @Param id path int true "ID"
// @Success 204
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /options/{id} [delete]
func (h *OptionHandler) DeleteOption(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	setting, ok := h.loadWritable(c, user)
	if !ok {
		return
	}

	if err := h.settingsService.DeleteOption(c.Request.Context(), setting.ID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	noContent(c)
}

// loadVisible loads the option named by :id if the current user may read it.
// Rows of other users answer 404 to avoid leaking their existence.
func (h *OptionHandler) loadVisible(c *gin.Context) (*models.Setting, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	setting, err := h.settingsService.GetOption(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return nil, false
	}

	if !user.Can(models.CapabilityAdmin) && setting.UserID != nil && *setting.UserID != user.ID {
		apierrors.Respond(c, services.ErrSettingNotFound)
		return nil, false
	}
	return setting, true
}

// loadWritable is loadVisible plus the rule that only admins change global rows.
func (h *OptionHandler) loadWritable(c *gin.Context, user *models.User) (*models.Setting, bool) {
	setting, ok := h.loadVisible(c)
	if !ok {
		return nil, false
	}
	if setting.UserID == nil && !user.Can(models.CapabilityAdmin) {
		apierrors.Forbidden(c, "Global options require administrator rights")
		return nil, false
	}
	return setting, true
}
