package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/services"
	"github.com/yukikurage/todo-tracker/internal/utils"
)

// Dashboard lists todos a page at a time. The page size comes from the
// resolved preferences, so ?per_page= applies to this response only.
func (h *WebHandler) Dashboard(c *gin.Context) {
	prefs := middleware.GetPreferences(c)
	params := utils.GetPaginationParams(c, prefs.PerPage)

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		h.flashError(c, err)
	}

	// a one-off page size has to survive paging
	perPageOverride := 0
	if n, err := strconv.Atoi(c.Query("per_page")); err == nil && utils.IsAllowedPageSize(n) {
		perPageOverride = n
	}

	h.render(c, http.StatusOK, "index.html", "todo.list_title", gin.H{
		"Todos":           tasks,
		"Pagination":      utils.NewPaginationResponse(params, total),
		"PerPageOverride": perPageOverride,
	})
}

// NewTodoPage shows the creation form
func (h *WebHandler) NewTodoPage(c *gin.Context) {
	h.render(c, http.StatusOK, "todo_form.html", "todo.new_title", nil)
}

// CreateTodo creates a todo from the form
func (h *WebHandler) CreateTodo(c *gin.Context) {
	dueDate, err := utils.ParseDueDate(c.PostForm("due_date"))
	if err != nil {
		h.flash(c, "todo.invalid_date")
		redirect(c, "/todo/new")
		return
	}

	_, err = h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Completed:   checkbox(c, "completed"),
		DueDate:     dueDate,
	})
	if err != nil {
		h.flashError(c, err)
		redirect(c, "/todo/new")
		return
	}

	h.flash(c, "todo.created")
	redirect(c, "/dashboard")
}

// EditTodoPage shows the edit form
func (h *WebHandler) EditTodoPage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		h.loadFailed(c, err, "/dashboard")
		return
	}

	h.render(c, http.StatusOK, "todo_form.html", "todo.edit_title", gin.H{
		"Todo": task,
	})
}

// UpdateTodo saves the edit form. Every field is submitted; an empty due
// date counts as not supplied.
func (h *WebHandler) UpdateTodo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	back := c.Request.URL.Path

	dueDate, err := utils.ParseDueDate(c.PostForm("due_date"))
	if err != nil {
		h.flash(c, "todo.invalid_date")
		redirect(c, back)
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	completed := checkbox(c, "completed")

	_, err = h.taskService.UpdateTask(c.Request.Context(), id, services.UpdateTaskInput{
		Title:       &title,
		Description: &description,
		Completed:   &completed,
		DueDate:     dueDate,
	})
	if err != nil {
		h.loadFailed(c, err, back)
		return
	}

	h.flash(c, "todo.updated")
	redirect(c, "/dashboard")
}

// DeleteTodo deletes a todo
func (h *WebHandler) DeleteTodo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		h.loadFailed(c, err, "/dashboard")
		return
	}

	h.flash(c, "todo.deleted")
	redirectBack(c)
}

// ToggleTodo flips a todo's completion flag
func (h *WebHandler) ToggleTodo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if _, err := h.taskService.ToggleTask(c.Request.Context(), id); err != nil {
		h.loadFailed(c, err, "/dashboard")
		return
	}

	redirectBack(c)
}

// checkbox reports whether an HTML checkbox was ticked.
func checkbox(c *gin.Context, name string) bool {
	value, ok := c.GetPostForm(name)
	if !ok {
		return false
	}
	switch strings.ToLower(value) {
	case "", "0", "false", "off":
		return false
	}
	return true
}
