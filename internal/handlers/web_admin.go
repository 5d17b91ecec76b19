package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// ManageUsers lists every account
func (h *WebHandler) ManageUsers(c *gin.Context) {
	users, _, err := h.userService.ListUsers(c.Request.Context(), 0, 0)
	if err != nil {
		h.flashError(c, err)
	}
	h.render(c, http.StatusOK, "manage_users.html", "user.list_title", gin.H{
		"Users": users,
	})
}

// NewUserPage shows the account creation form
func (h *WebHandler) NewUserPage(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		h.loadFailed(c, err, "/admin/users")
		return
	}
	h.render(c, http.StatusOK, "user_form.html", "user.new_title", gin.H{
		"Roles": roles,
	})
}

// CreateUser creates an account from the form
func (h *WebHandler) CreateUser(c *gin.Context) {
	roleID, _ := strconv.ParseUint(c.PostForm("role_id"), 10, 64)

	_, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		RoleID:   roleID,
	})
	if err != nil {
		h.flashError(c, err)
		redirect(c, "/admin/users/new")
		return
	}

	h.flash(c, "user.created")
	redirect(c, "/admin/users")
}

// EditUserPage shows the account edit form
func (h *WebHandler) EditUserPage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.loadFailed(c, err, "/admin/users")
		return
	}
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		h.loadFailed(c, err, "/admin/users")
		return
	}

	h.render(c, http.StatusOK, "user_form.html", "user.edit_title", gin.H{
		"EditUser": user,
		"Roles":    roles,
	})
}

// UpdateUser saves the account edit form. An empty password keeps the old one.
func (h *WebHandler) UpdateUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	back := fmt.Sprintf("/admin/users/%d/edit", id)

	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	input := services.UpdateUserInput{
		Username: &username,
		Email:    &email,
		Password: &password,
	}
	if raw := c.PostForm("role_id"); raw != "" {
		roleID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.flash(c, "role.not_found")
			redirect(c, back)
			return
		}
		input.RoleID = &roleID
	}

	if _, err := h.userService.UpdateUser(c.Request.Context(), id, input); err != nil {
		h.loadFailed(c, err, back)
		return
	}

	h.flash(c, "user.updated")
	redirect(c, "/admin/users")
}

// DeleteUser removes an account other than the caller's own
func (h *WebHandler) DeleteUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	if err := h.userService.DeleteUser(c.Request.Context(), actorID, id); err != nil {
		h.loadFailed(c, err, "/admin/users")
		return
	}

	h.flash(c, "user.deleted")
	redirect(c, "/admin/users")
}

// ManageRoles lists every role
func (h *WebHandler) ManageRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		h.flashError(c, err)
	}
	h.render(c, http.StatusOK, "manage_roles.html", "role.list_title", gin.H{
		"Roles": roles,
	})
}

// NewRolePage shows the role creation form
func (h *WebHandler) NewRolePage(c *gin.Context) {
	h.render(c, http.StatusOK, "role_form.html", "role.new_title", nil)
}

// CreateRole creates a role from the form
func (h *WebHandler) CreateRole(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")

	_, err := h.roleService.CreateRole(c.Request.Context(), services.RoleInput{
		Name:        &name,
		Description: &description,
	})
	if err != nil {
		h.flashError(c, err)
		redirect(c, "/admin/roles/new")
		return
	}

	h.flash(c, "role.created")
	redirect(c, "/admin/roles")
}

// EditRolePage shows the role edit form
func (h *WebHandler) EditRolePage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(c.Request.Context(), id)
	if err != nil {
		h.loadFailed(c, err, "/admin/roles")
		return
	}

	h.render(c, http.StatusOK, "role_form.html", "role.edit_title", gin.H{
		"Role": role,
	})
}

// UpdateRole saves the role edit form
func (h *WebHandler) UpdateRole(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := c.PostForm("description")

	_, err := h.roleService.UpdateRole(c.Request.Context(), id, services.RoleInput{
		Name:        &name,
		Description: &description,
	})
	if err != nil {
		h.loadFailed(c, err, fmt.Sprintf("/admin/roles/%d/edit", id))
		return
	}

	h.flash(c, "role.updated")
	redirect(c, "/admin/roles")
}

// DeleteRole removes a role that is neither admin nor assigned
func (h *WebHandler) DeleteRole(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), id); err != nil {
		h.loadFailed(c, err, "/admin/roles")
		return
	}

	h.flash(c, "role.deleted")
	redirect(c, "/admin/roles")
}

// ViewOptions lists the global interface settings
func (h *WebHandler) ViewOptions(c *gin.Context) {
	category := constants.CategoryUserSetting
	options, err := h.settingsService.ListOptions(c.Request.Context(), repository.SettingFilter{
		Category:   &category,
		GlobalOnly: true,
	})
	if err != nil {
		h.flashError(c, err)
	}

	h.render(c, http.StatusOK, "options.html", "options.title", gin.H{
		"Options": options,
	})
}
