package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/dto"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// UserHandler serves the admin JSON user API.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns users ordered by ID
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {array} dto.UserDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, perPage := listPage(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), page, perPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondList(c, dto.ToUserDTOs(users), total)
}

// GetUser returns a user by ID
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates an account with the given role
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser applies the fields present in the body
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes an account other than the caller's own
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "ID"
// @Success 204
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actorID, id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	noContent(c)
}
