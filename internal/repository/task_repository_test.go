package repository_test

import (
	"context"
	"testing"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	task := &model.Task{
		ID:         uuid.New(),
		ProjectID:  uuid.New(),
		Title:      "Test Task",
		StatusCode: model.StatusTodo,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(task.ID.String()))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	projectID := uuid.New()
	tenantID := uuid.New()

	// The lookup must join projects to scope by tenant
	mock.ExpectQuery(`SELECT .* FROM "tasks" JOIN projects ON projects.id = tasks.project_id WHERE tasks.id = .* AND projects.tenant_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status_code", "created_at", "updated_at"}).
			AddRow(taskID.String(), projectID.String(), "Test Task", model.StatusTodo, time.Now(), time.Now()))

	// Act
	task, err := taskRepo.GetByID(context.Background(), tenantID, taskID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, taskID, task.ID)
	assert.Equal(t, "Test Task", task.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" JOIN projects ON projects.id = tasks.project_id`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.GetByID(context.Background(), uuid.New(), uuid.New())

	// Assert
	assert.NoError(t, err) // A missing row is not an error
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" JOIN projects ON projects.id = tasks.project_id`).
		WillReturnError(assert.AnError)

	// Act
	task, err := taskRepo.GetByID(context.Background(), uuid.New(), uuid.New())

	// Assert
	assert.Error(t, err)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByProjectID(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	projectID := uuid.New()
	tenantID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "tasks" JOIN projects ON projects.id = tasks.project_id WHERE tasks.project_id = .* AND projects.tenant_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status_code"}).
			AddRow(firstID.String(), projectID.String(), "First", model.StatusTodo).
			AddRow(secondID.String(), projectID.String(), "Second", model.StatusInProgress))

	// Act
	tasks, err := taskRepo.GetByProjectID(context.Background(), tenantID, projectID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, firstID, tasks[0].ID)
	assert.Equal(t, secondID, tasks[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" JOIN projects ON projects.id = tasks.project_id`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	err := taskRepo.Delete(context.Background(), uuid.New(), uuid.New())

	// Assert
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
