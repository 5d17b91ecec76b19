package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/metrics"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"gorm.io/gorm"
)

const maxTitleLength = 100

var (
	ErrTaskNotFound  = apierrors.New(apierrors.ErrNotFound, "task not found")
	ErrTitleRequired = apierrors.New(apierrors.ErrValidation, "title is required")
	ErrTitleTooLong  = apierrors.New(apierrors.ErrValidation, fmt.Sprintf("title must be at most %d characters", maxTitleLength))
)

// TaskService handles task business logic. Every mutation path runs the
// completion rule in ResolveDueDate.
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Completed     *bool
	SortByDueDate bool
	Page          int
	PageSize      int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
}

// UpdateTaskInput represents input for updating a task. Nil fields keep
// their stored value; a nil DueDate counts as "not supplied".
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
}

// ListTasks returns a page of tasks and the total count
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{
		Completed:     input.Completed,
		SortByDueDate: input.SortByDueDate,
		Page:          input.Page,
		PageSize:      input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a new task. A task created as completed gets a due date.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Completed:   input.Completed,
		DueDate:     ResolveDueDate(false, input.Completed, input.DueDate, nil, s.now()),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	if task.Completed {
		metrics.ObserveTaskTransition(true)
	}

	return task, nil
}

// UpdateTask applies the provided fields to a task
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}

	completed := task.Completed
	if input.Completed != nil {
		completed = *input.Completed
	}
	s.applyCompletion(task, completed, input.DueDate)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ToggleTask flips the completion flag. A toggle never carries a due date.
func (s *TaskService) ToggleTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.applyCompletion(task, !task.Completed, nil)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) applyCompletion(task *models.Task, completed bool, requestedDue *time.Time) {
	task.DueDate = ResolveDueDate(task.Completed, completed, requestedDue, task.DueDate, s.now())
	if task.Completed != completed {
		metrics.ObserveTaskTransition(completed)
	}
	task.Completed = completed
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
