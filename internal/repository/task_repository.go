package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task. The caller is responsible for verifying that
// the project belongs to the acting tenant first.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task, scoped to the tenant through its project.
// Returns (nil, nil) when the task does not exist or belongs to another
// tenant; callers must not be able to tell those cases apart.
func (r *TaskRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.tenant_id = ?", id, tenantID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// GetByProjectID retrieves all tasks in a tenant-scoped project.
func (r *TaskRepository) GetByProjectID(ctx context.Context, tenantID, projectID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.project_id = ? AND projects.tenant_id = ?", projectID, tenantID).
		Order("tasks.created_at").
		Find(&tasks).Error
	return tasks, err
}

// Update saves a task after re-verifying tenancy.
func (r *TaskRepository) Update(ctx context.Context, tenantID uuid.UUID, task *model.Task) error {
	existing, err := r.GetByID(ctx, tenantID, task.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete soft-deletes a tenant-scoped task.
func (r *TaskRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	task, err := r.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if task == nil {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Delete(task).Error
}
