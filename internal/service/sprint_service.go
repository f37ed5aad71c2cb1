package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// NumberPlaceholder is substituted with the next sprint number when a
// template names a sprint.
const NumberPlaceholder = "{number}"

// SprintService manages department sprint templates and stamps sprints
// out of them. Template defaults follow the same single-default-per-
// department rule as task statuses.
type SprintService struct {
	sprintRepo     *repository.SprintRepository
	templateRepo   *repository.SprintTemplateRepository
	projectRepo    *repository.ProjectRepository
	departmentRepo *repository.DepartmentRepository
}

func NewSprintService(
	sprintRepo *repository.SprintRepository,
	templateRepo *repository.SprintTemplateRepository,
	projectRepo *repository.ProjectRepository,
	departmentRepo *repository.DepartmentRepository,
) *SprintService {
	return &SprintService{
		sprintRepo:     sprintRepo,
		templateRepo:   templateRepo,
		projectRepo:    projectRepo,
		departmentRepo: departmentRepo,
	}
}

type CreateTemplateInput struct {
	DepartmentID uuid.UUID
	NamePattern  string
	DurationDays int
	IsDefault    bool
}

// CreateTemplate adds a sprint template to a tenant-owned department.
func (s *SprintService) CreateTemplate(ctx context.Context, tenantID uuid.UUID, input CreateTemplateInput) (*model.SprintTemplate, error) {
	department, err := s.departmentRepo.GetByID(ctx, tenantID, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	template := &model.SprintTemplate{
		DepartmentID: input.DepartmentID,
		NamePattern:  input.NamePattern,
		DurationDays: input.DurationDays,
		IsDefault:    input.IsDefault,
	}

	err = s.templateRepo.Transaction(ctx, func(tx *repository.SprintTemplateRepository) error {
		if input.IsDefault {
			if err := tx.ClearDefaultsForDepartment(ctx, input.DepartmentID); err != nil {
				return err
			}
		}
		return tx.Create(ctx, template)
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// SetDefaultTemplate promotes a template to its department's default,
// demoting the current one in the same transaction.
func (s *SprintService) SetDefaultTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*model.SprintTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	err = s.templateRepo.Transaction(ctx, func(tx *repository.SprintTemplateRepository) error {
		if err := tx.ClearDefaultsForDepartment(ctx, template.DepartmentID); err != nil {
			return err
		}
		template.IsDefault = true
		return tx.Update(ctx, template)
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// ListTemplates returns a tenant-owned department's templates.
func (s *SprintService) ListTemplates(ctx context.Context, tenantID, departmentID uuid.UUID) ([]model.SprintTemplate, error) {
	department, err := s.departmentRepo.GetByID(ctx, tenantID, departmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	return s.templateRepo.GetByDepartmentID(ctx, tenantID, departmentID)
}

// CreateFromTemplate stamps a sprint out of a template: the sprint runs
// from now for the template's duration and is named by substituting the
// project's next sprint number into the template's pattern.
func (s *SprintService) CreateFromTemplate(ctx context.Context, tenantID, projectID, templateID uuid.UUID) (*model.Sprint, error) {
	template, err := s.templateRepo.GetByID(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	count, err := s.sprintRepo.CountByProjectID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	return s.createSprint(ctx, tenantID, projectID, sprintName(template.NamePattern, count+1), start, start.AddDate(0, 0, template.DurationDays))
}

// createSprint persists a sprint, independently re-verifying that the
// project belongs to the tenant.
func (s *SprintService) createSprint(ctx context.Context, tenantID, projectID uuid.UUID, name string, start, end time.Time) (*model.Sprint, error) {
	project, err := s.projectRepo.GetByID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	sprint := &model.Sprint{
		ProjectID: projectID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.sprintRepo.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func sprintName(pattern string, number int64) string {
	if pattern == "" {
		return fmt.Sprintf("Sprint %d", number)
	}
	return strings.ReplaceAll(pattern, NumberPlaceholder, strconv.FormatInt(number, 10))
}
