package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-tracker/internal/dto"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// TaskHandler serves the JSON todo API.
type TaskHandler struct {
	taskService *services.TaskService
	suggester   *services.TodoSuggester
}

// NewTaskHandler creates a new TaskHandler. suggester may be nil.
func NewTaskHandler(taskService *services.TaskService, suggester *services.TodoSuggester) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		suggester:   suggester,
	}
}

// ListTasks returns todos ordered by ID.
// Optional filters: completed=true|false, sort=due_date, page and per_page.
// @Summary List todos
// @Tags todos
// @Produce json
// @Param completed query bool false "Completion filter"
// @Param sort query string false "due_date orders by due date"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {array} dto.TaskDTO
// @Failure 401 {object} apierrors.APIError
// @Router /todos [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{
		SortByDueDate: c.Query("sort") == "due_date",
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid completed filter")
			return
		}
		input.Completed = &completed
	}
	input.Page, input.PageSize = listPage(c)

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respondList(c, dto.ToTaskDTOs(tasks), total)
}

// GetTask returns the task loaded by LoadTask
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.TaskDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /todos/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
// @Summary Create a todo
// @Description Completed todos without a due date get the current time; open todos never keep one.
// @Tags todos
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Todo"
// @Success 201 {object} dto.TaskDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Router /todos [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dueDate, ok := parseDueDate(c, req.DueDate)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     dueDate,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies the fields present in the body
// @Summary Update a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.TaskDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /todos/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dueDate, ok := parseDueDate(c, req.DueDate)
	if !ok {
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task.ID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     dueDate,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// ToggleTask flips the completion flag
// @Summary Toggle completion
// @Tags todos
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} dto.TaskDTO
// @Failure 401 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /todos/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	toggled, err := h.taskService.ToggleTask(c.Request.Context(), task.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*toggled))
}

// DeleteTask deletes a task
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Param id path int true "ID"
// @Success 204
// @Failure 401 {object} apierrors.APIError
// @Failure 404 {object} apierrors.APIError
// @Router /todos/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), task.ID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	noContent(c)
}

// SuggestTasks drafts todos from free text with OpenAI. Nothing is stored.
// @Summary Draft todos from free text
// @Tags todos
// @Accept json
// @Produce json
// @Param request body dto.SuggestTasksRequest true "Text to split into todos"
// @Success 200 {array} dto.TaskDraftDTO
// @Failure 400 {object} apierrors.APIError
// @Failure 401 {object} apierrors.APIError
// @Failure 503 {object} apierrors.APIError
// @Router /todos/suggest [post]
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	if h.suggester == nil {
		apierrors.ServiceUnavailable(c, "Task suggestions are not configured")
		return
	}

	var req dto.SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	drafts, err := h.suggester.Suggest(c.Request.Context(), req.Text, middleware.GetPreferences(c).Language)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDraftDTOs(drafts))
}
