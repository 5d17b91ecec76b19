package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/testutil"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	now     time.Time
	ctx     context.Context
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewTaskService(repository.NewTaskRepository(suite.db))
	suite.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
	suite.ctx = context.Background()
}

func (suite *TaskServiceTestSuite) create(title string, completed bool, due *time.Time) uint64 {
	task, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		Title:     title,
		Completed: completed,
		DueDate:   due,
	})
	suite.Require().NoError(err)
	return task.ID
}

func (suite *TaskServiceTestSuite) TestCreateTask_OpenHasNoDueDate() {
	due := suite.now.Add(48 * time.Hour)
	id := suite.create("Write report", false, &due)

	task, err := suite.service.GetTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.False(task.Completed)
	suite.Nil(task.DueDate)
}

func (suite *TaskServiceTestSuite) TestCreateTask_CompletedGetsNow() {
	id := suite.create("Pay rent", true, nil)

	task, err := suite.service.GetTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.True(task.Completed)
	suite.Require().NotNil(task.DueDate)
	suite.WithinDuration(suite.now, *task.DueDate, time.Second)
}

func (suite *TaskServiceTestSuite) TestCreateTask_TitleRequired() {
	_, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{Title: "   "})
	suite.ErrorIs(err, ErrTitleRequired)
}

func (suite *TaskServiceTestSuite) TestToggleTwice() {
	id := suite.create("Buy milk", false, nil)

	task, err := suite.service.ToggleTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.True(task.Completed)
	suite.Require().NotNil(task.DueDate)
	suite.WithinDuration(suite.now, *task.DueDate, time.Second)

	task, err = suite.service.ToggleTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.False(task.Completed)
	suite.Nil(task.DueDate)

	stored, err := suite.service.GetTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.False(stored.Completed)
	suite.Nil(stored.DueDate)
}

func (suite *TaskServiceTestSuite) TestToggle_DropsManualDueDate() {
	due := suite.now.Add(-24 * time.Hour)
	id := suite.create("Call mom", true, &due)

	task, err := suite.service.ToggleTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Nil(task.DueDate)

	task, err = suite.service.ToggleTask(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Require().NotNil(task.DueDate)
	suite.WithinDuration(suite.now, *task.DueDate, time.Second)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_PartialKeepsFields() {
	id := suite.create("Old title", false, nil)
	description := "details"

	task, err := suite.service.UpdateTask(suite.ctx, id, UpdateTaskInput{Description: &description})
	suite.Require().NoError(err)
	suite.Equal("Old title", task.Title)
	suite.Equal("details", task.Description)
	suite.False(task.Completed)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_CompletedKeepsExistingDueDate() {
	due := suite.now.Add(-72 * time.Hour)
	id := suite.create("Done earlier", true, &due)
	title := "Done earlier, renamed"

	task, err := suite.service.UpdateTask(suite.ctx, id, UpdateTaskInput{Title: &title})
	suite.Require().NoError(err)
	suite.True(task.Completed)
	suite.Require().NotNil(task.DueDate)
	suite.WithinDuration(due, *task.DueDate, time.Second)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_CompletedWithNewDueDate() {
	id := suite.create("Report", true, nil)
	due := suite.now.Add(5 * time.Hour)

	task, err := suite.service.UpdateTask(suite.ctx, id, UpdateTaskInput{DueDate: &due})
	suite.Require().NoError(err)
	suite.Require().NotNil(task.DueDate)
	suite.WithinDuration(due, *task.DueDate, time.Second)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_OpenIgnoresDueDate() {
	id := suite.create("Someday", false, nil)
	due := suite.now.Add(5 * time.Hour)

	task, err := suite.service.UpdateTask(suite.ctx, id, UpdateTaskInput{DueDate: &due})
	suite.Require().NoError(err)
	suite.Nil(task.DueDate)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_Reopen() {
	id := suite.create("Reopen me", true, nil)
	completed := false

	task, err := suite.service.UpdateTask(suite.ctx, id, UpdateTaskInput{Completed: &completed})
	suite.Require().NoError(err)
	suite.False(task.Completed)
	suite.Nil(task.DueDate)
}

func (suite *TaskServiceTestSuite) TestListTasks_Paginated() {
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		suite.create(title, false, nil)
	}

	tasks, total, err := suite.service.ListTasks(suite.ctx, ListTasksInput{Page: 2, PageSize: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Require().Len(tasks, 2)
	suite.Equal("c", tasks[0].Title)
	suite.Equal("d", tasks[1].Title)
}

func (suite *TaskServiceTestSuite) TestListTasks_CompletedFilter() {
	suite.create("open", false, nil)
	suite.create("done", true, nil)
	completed := true

	tasks, total, err := suite.service.ListTasks(suite.ctx, ListTasksInput{Completed: &completed})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(tasks, 1)
	suite.Equal("done", tasks[0].Title)
}

func (suite *TaskServiceTestSuite) TestMissingTask() {
	_, err := suite.service.GetTask(suite.ctx, 999)
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.service.ToggleTask(suite.ctx, 999)
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.ErrorIs(suite.service.DeleteTask(suite.ctx, 999), ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDeleteTask() {
	id := suite.create("Temporary", false, nil)

	suite.Require().NoError(suite.service.DeleteTask(suite.ctx, id))

	_, err := suite.service.GetTask(suite.ctx, id)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
