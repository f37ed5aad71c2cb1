package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/model"
)

type DependencyRepository struct {
	db *gorm.DB
}

func NewDependencyRepository(db *gorm.DB) *DependencyRepository {
	return &DependencyRepository{db: db}
}

// Transaction runs fn against a repository bound to a single transaction.
// The dependency check-then-insert must happen inside one of these.
func (r *DependencyRepository) Transaction(ctx context.Context, fn func(tx *DependencyRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DependencyRepository{db: tx})
	})
}

func (r *DependencyRepository) Create(ctx context.Context, dep *model.TaskDependency) error {
	return r.db.WithContext(ctx).Create(dep).Error
}

// GetByID retrieves an edge scoped to the tenant through its owning
// task's project. Returns (nil, nil) when out of scope.
func (r *DependencyRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.TaskDependency, error) {
	var dep model.TaskDependency
	err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = task_dependencies.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("task_dependencies.id = ? AND projects.tenant_id = ?", id, tenantID).
		First(&dep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dep, nil
}

// GetByTaskID returns all edges where the given task is the depending
// side, in insertion order.
func (r *DependencyRepository) GetByTaskID(ctx context.Context, tenantID, taskID uuid.UUID) ([]model.TaskDependency, error) {
	var deps []model.TaskDependency
	err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = task_dependencies.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("task_dependencies.task_id = ? AND projects.tenant_id = ?", taskID, tenantID).
		Order("task_dependencies.created_at").
		Find(&deps).Error
	return deps, err
}

// GetAllForTenant returns every edge in the tenant, the input for cycle
// detection.
func (r *DependencyRepository) GetAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaskDependency, error) {
	var deps []model.TaskDependency
	err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = task_dependencies.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.tenant_id = ?", tenantID).
		Find(&deps).Error
	return deps, err
}

// Exists reports whether the exact ordered edge already exists.
func (r *DependencyRepository) Exists(ctx context.Context, taskID, dependsOnID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskDependency{}).
		Where("task_id = ? AND depends_on_id = ?", taskID, dependsOnID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes a tenant-scoped edge. Removing an edge can never create
// a cycle, so there is nothing to re-check.
func (r *DependencyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	dep, err := r.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if dep == nil {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Delete(dep).Error
}
