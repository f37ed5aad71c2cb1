package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/model"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

// GetByID retrieves a department owned by the tenant. Returns (nil, nil)
// when out of scope.
func (r *DepartmentRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Department, error) {
	var department model.Department
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *DepartmentRepository) GetByTenantID(ctx context.Context, tenantID uuid.UUID) ([]model.Department, error) {
	var departments []model.Department
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at").
		Find(&departments).Error
	return departments, err
}
