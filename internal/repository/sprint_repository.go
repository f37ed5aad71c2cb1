package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/model"
)

type SprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

func (r *SprintRepository) Create(ctx context.Context, sprint *model.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

// CountByProjectID returns how many sprints a tenant-scoped project
// already has; the next sprint number is count+1.
func (r *SprintRepository) CountByProjectID(ctx context.Context, tenantID, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sprint{}).
		Joins("JOIN projects ON projects.id = sprints.project_id").
		Where("sprints.project_id = ? AND projects.tenant_id = ?", projectID, tenantID).
		Count(&count).Error
	return count, err
}

// GetByProjectID returns a project's sprints, newest last.
func (r *SprintRepository) GetByProjectID(ctx context.Context, tenantID, projectID uuid.UUID) ([]model.Sprint, error) {
	var sprints []model.Sprint
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = sprints.project_id").
		Where("sprints.project_id = ? AND projects.tenant_id = ?", projectID, tenantID).
		Order("sprints.start_date").
		Find(&sprints).Error
	return sprints, err
}
