package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/model"
)

type SprintTemplateRepository struct {
	db *gorm.DB
}

func NewSprintTemplateRepository(db *gorm.DB) *SprintTemplateRepository {
	return &SprintTemplateRepository{db: db}
}

// Transaction runs fn against a repository bound to a single transaction.
func (r *SprintTemplateRepository) Transaction(ctx context.Context, fn func(tx *SprintTemplateRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SprintTemplateRepository{db: tx})
	})
}

func (r *SprintTemplateRepository) Create(ctx context.Context, template *model.SprintTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// GetByID retrieves a template scoped to the tenant through its
// department. Returns (nil, nil) when out of scope.
func (r *SprintTemplateRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.SprintTemplate, error) {
	var template model.SprintTemplate
	err := r.db.WithContext(ctx).
		Joins("JOIN departments ON departments.id = sprint_templates.department_id").
		Where("sprint_templates.id = ? AND departments.tenant_id = ?", id, tenantID).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// GetByDepartmentID returns a department's templates.
func (r *SprintTemplateRepository) GetByDepartmentID(ctx context.Context, tenantID, departmentID uuid.UUID) ([]model.SprintTemplate, error) {
	var templates []model.SprintTemplate
	err := r.db.WithContext(ctx).
		Joins("JOIN departments ON departments.id = sprint_templates.department_id").
		Where("sprint_templates.department_id = ? AND departments.tenant_id = ?", departmentID, tenantID).
		Order("sprint_templates.created_at").
		Find(&templates).Error
	return templates, err
}

// ClearDefaultsForDepartment drops the default flag on every template in
// the department.
func (r *SprintTemplateRepository) ClearDefaultsForDepartment(ctx context.Context, departmentID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.SprintTemplate{}).
		Where("department_id = ? AND is_default = ?", departmentID, true).
		Update("is_default", false).Error
}

func (r *SprintTemplateRepository) Update(ctx context.Context, template *model.SprintTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}
