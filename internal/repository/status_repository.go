package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/model"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Transaction runs fn against a repository bound to a single transaction.
// Default-flag flips and the lazy bootstrap run inside one of these.
func (r *StatusRepository) Transaction(ctx context.Context, fn func(tx *StatusRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StatusRepository{db: tx})
	})
}

func (r *StatusRepository) Create(ctx context.Context, status *model.TaskStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

// CreateBatch inserts a set of statuses all-or-nothing.
func (r *StatusRepository) CreateBatch(ctx context.Context, statuses []model.TaskStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range statuses {
			if err := tx.Create(&statuses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskStatus, error) {
	var status model.TaskStatus
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// GetByProjectID returns statuses scoped directly to a project, in sort
// order.
func (r *StatusRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.TaskStatus, error) {
	var statuses []model.TaskStatus
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order").
		Find(&statuses).Error
	return statuses, err
}

// GetByDepartmentID returns statuses scoped directly to a department, in
// sort order.
func (r *StatusRepository) GetByDepartmentID(ctx context.Context, departmentID uuid.UUID) ([]model.TaskStatus, error) {
	var statuses []model.TaskStatus
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("sort_order").
		Find(&statuses).Error
	return statuses, err
}

// FindByCodeInScope looks up a status by code within one exact scope.
// Both scope ids may be nil (system templates).
func (r *StatusRepository) FindByCodeInScope(ctx context.Context, projectID, departmentID *uuid.UUID, code string) (*model.TaskStatus, error) {
	var status model.TaskStatus
	err := scopeQuery(r.db.WithContext(ctx), projectID, departmentID).
		Where("code = ?", code).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// ClearDefaultsInScope drops the default flag on every status sharing the
// exact scope. Called before inserting or promoting a new default so the
// scope never holds two defaults.
func (r *StatusRepository) ClearDefaultsInScope(ctx context.Context, projectID, departmentID *uuid.UUID) error {
	return scopeQuery(r.db.WithContext(ctx).Model(&model.TaskStatus{}), projectID, departmentID).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func (r *StatusRepository) Update(ctx context.Context, status *model.TaskStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TaskStatus{}, "id = ?", id).Error
}

// UpdateSortOrder assigns a status its position in the scope ordering.
func (r *StatusRepository) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int) error {
	return r.db.WithContext(ctx).Model(&model.TaskStatus{}).
		Where("id = ?", id).
		Update("sort_order", sortOrder).Error
}

func scopeQuery(db *gorm.DB, projectID, departmentID *uuid.UUID) *gorm.DB {
	if projectID != nil {
		db = db.Where("project_id = ?", *projectID)
	} else {
		db = db.Where("project_id IS NULL")
	}
	if departmentID != nil {
		db = db.Where("department_id = ?", *departmentID)
	} else {
		db = db.Where("department_id IS NULL")
	}
	return db
}
