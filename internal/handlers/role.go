package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/dto"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// RoleHandler serves the admin JSON role API.
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// ListRoles returns every role
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {array} dto.RoleDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondList(c, dto.ToRoleDTOs(roles), int64(len(roles)))
}

// GetRole returns a role by ID
// @Summary Get a role
// @Tags roles
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.RoleDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// CreateRole creates a role
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param request body dto.RoleRequest true "Role"
// @Success 201 {object} dto.RoleDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), services.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleDTO(*role))
}

// UpdateRole applies the fields present in the body
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param request body dto.RoleRequest true "Role"
// @Success 200 {object} dto.RoleDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), id, services.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// DeleteRole removes a role that is neither admin nor assigned
// @Summary Delete a role
// @Tags roles
// @Produce json
// @Param id path int true "ID"
// @Success 204
// @Failure 401 {object} apierrors.APIError
// @Failure 403 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Failure 409 {object} apierrors.APIError
// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	noContent(c)
}
