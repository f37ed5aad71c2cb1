package service

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// StatusService enforces the task-status scoping rules: a status belongs
// to a project or a department (never both), codes are unique within a
// scope, and a scope holds at most one default at a time.
type StatusService struct {
	statusRepo     *repository.StatusRepository
	projectRepo    *repository.ProjectRepository
	departmentRepo *repository.DepartmentRepository
}

func NewStatusService(
	statusRepo *repository.StatusRepository,
	projectRepo *repository.ProjectRepository,
	departmentRepo *repository.DepartmentRepository,
) *StatusService {
	return &StatusService{
		statusRepo:     statusRepo,
		projectRepo:    projectRepo,
		departmentRepo: departmentRepo,
	}
}

type CreateStatusInput struct {
	ProjectID    *uuid.UUID
	DepartmentID *uuid.UUID
	Code         string
	Name         string
	Color        string
	SortOrder    int
	IsDefault    bool
	IsTerminal   bool
}

// Create inserts a status after validating scope exclusivity, scope
// ownership and code uniqueness. When the new status is the default, the
// previous default in the same scope loses the flag in the same
// transaction.
func (s *StatusService) Create(ctx context.Context, tenantID uuid.UUID, input CreateStatusInput) (*model.TaskStatus, error) {
	if input.ProjectID != nil && input.DepartmentID != nil {
		return nil, ErrScopeConflict
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, tenantID, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, ErrProjectNotFound
		}
	}
	if input.DepartmentID != nil {
		department, err := s.departmentRepo.GetByID(ctx, tenantID, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, ErrDepartmentNotFound
		}
	}

	status := &model.TaskStatus{
		ProjectID:    input.ProjectID,
		DepartmentID: input.DepartmentID,
		Code:         input.Code,
		Name:         input.Name,
		Color:        input.Color,
		SortOrder:    input.SortOrder,
		IsDefault:    input.IsDefault,
		IsTerminal:   input.IsTerminal,
	}

	err := s.statusRepo.Transaction(ctx, func(tx *repository.StatusRepository) error {
		existing, err := tx.FindByCodeInScope(ctx, input.ProjectID, input.DepartmentID, input.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrStatusCodeTaken
		}
		if input.IsDefault {
			if err := tx.ClearDefaultsInScope(ctx, input.ProjectID, input.DepartmentID); err != nil {
				return err
			}
		}
		return tx.Create(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// ResolveForProject returns the statuses effective for a project:
// project-scoped statuses first, then the department's, and when neither
// exists the fixed default set is persisted for the project and
// returned. The bootstrap re-checks emptiness inside its transaction so
// a concurrent first call cannot stamp out a second set.
func (s *StatusService) ResolveForProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]model.TaskStatus, error) {
	project, err := s.projectRepo.GetByID(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	statuses, err := s.statusRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(statuses) > 0 {
		return statuses, nil
	}

	if project.DepartmentID != nil {
		statuses, err = s.statusRepo.GetByDepartmentID(ctx, *project.DepartmentID)
		if err != nil {
			return nil, err
		}
		if len(statuses) > 0 {
			return statuses, nil
		}
	}

	var bootstrapped []model.TaskStatus
	err = s.statusRepo.Transaction(ctx, func(tx *repository.StatusRepository) error {
		existing, err := tx.GetByProjectID(ctx, projectID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			bootstrapped = existing
			return nil
		}
		defaults := model.DefaultStatusTemplate()
		for i := range defaults {
			defaults[i].ProjectID = &projectID
		}
		if err := tx.CreateBatch(ctx, defaults); err != nil {
			return err
		}
		bootstrapped = defaults
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bootstrapped, nil
}

type UpdateStatusInput struct {
	Name      *string
	Color     *string
	SortOrder *int
	IsDefault *bool
}

// Update changes a status's presentation fields; promoting one to
// default demotes the scope's current default in the same transaction.
func (s *StatusService) Update(ctx context.Context, tenantID, statusID uuid.UUID, input UpdateStatusInput) (*model.TaskStatus, error) {
	status, err := s.getOwnedStatus(ctx, tenantID, statusID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		status.Name = *input.Name
	}
	if input.Color != nil {
		status.Color = *input.Color
	}
	if input.SortOrder != nil {
		status.SortOrder = *input.SortOrder
	}

	err = s.statusRepo.Transaction(ctx, func(tx *repository.StatusRepository) error {
		if input.IsDefault != nil && *input.IsDefault && !status.IsDefault {
			if err := tx.ClearDefaultsInScope(ctx, status.ProjectID, status.DepartmentID); err != nil {
				return err
			}
			status.IsDefault = true
		}
		return tx.Update(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Delete removes a status unless it is its scope's default.
func (s *StatusService) Delete(ctx context.Context, tenantID, statusID uuid.UUID) error {
	status, err := s.getOwnedStatus(ctx, tenantID, statusID)
	if err != nil {
		return err
	}
	if status.IsDefault {
		return ErrDefaultStatusInUse
	}
	return s.statusRepo.Delete(ctx, statusID)
}

// Reorder assigns each status its index in the given order and returns
// the refreshed list for the scope of the first id. The caller supplies
// ids from one consistent scope.
func (s *StatusService) Reorder(ctx context.Context, tenantID uuid.UUID, orderedIDs []uuid.UUID) ([]model.TaskStatus, error) {
	if len(orderedIDs) == 0 {
		return nil, ErrNoStatusIDs
	}

	first, err := s.getOwnedStatus(ctx, tenantID, orderedIDs[0])
	if err != nil {
		return nil, err
	}

	err = s.statusRepo.Transaction(ctx, func(tx *repository.StatusRepository) error {
		for i, id := range orderedIDs {
			if err := tx.UpdateSortOrder(ctx, id, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if first.ProjectID != nil {
		return s.ResolveForProject(ctx, tenantID, *first.ProjectID)
	}
	return s.statusRepo.GetByDepartmentID(ctx, *first.DepartmentID)
}

// getOwnedStatus loads a status and verifies that its scope owner
// belongs to the tenant. System templates (no scope) are not editable
// through the tenant API, so they come back as not found too.
func (s *StatusService) getOwnedStatus(ctx context.Context, tenantID, statusID uuid.UUID) (*model.TaskStatus, error) {
	status, err := s.statusRepo.GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, ErrStatusNotFound
	}

	switch {
	case status.ProjectID != nil:
		project, err := s.projectRepo.GetByID(ctx, tenantID, *status.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, ErrStatusNotFound
		}
	case status.DepartmentID != nil:
		department, err := s.departmentRepo.GetByID(ctx, tenantID, *status.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, ErrStatusNotFound
		}
	default:
		return nil, ErrStatusNotFound
	}
	return status, nil
}
