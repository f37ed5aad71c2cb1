package service

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// DependencyService maintains the per-tenant DAG of task dependencies.
// The graph is never cached between calls; every mutation re-reads the
// tenant's edge set inside a transaction, so a stale view can never let
// a cycle through.
type DependencyService struct {
	taskRepo *repository.TaskRepository
	depRepo  *repository.DependencyRepository
}

func NewDependencyService(taskRepo *repository.TaskRepository, depRepo *repository.DependencyRepository) *DependencyService {
	return &DependencyService{taskRepo: taskRepo, depRepo: depRepo}
}

// Add creates the edge "taskID depends on dependsOnID" after verifying
// that both tasks belong to the tenant, the edge is not a self-loop or a
// duplicate, and the edge would not close a cycle.
func (s *DependencyService) Add(ctx context.Context, tenantID, taskID, dependsOnID uuid.UUID) (*model.TaskDependency, error) {
	if taskID == dependsOnID {
		return nil, ErrSelfDependency
	}

	task, err := s.taskRepo.GetByID(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	dependsOn, err := s.taskRepo.GetByID(ctx, tenantID, dependsOnID)
	if err != nil {
		return nil, err
	}
	if dependsOn == nil {
		return nil, ErrTaskNotFound
	}

	dep := &model.TaskDependency{TaskID: taskID, DependsOnID: dependsOnID}

	// Check-then-insert runs in one transaction so two concurrent adds
	// cannot each pass the cycle check and jointly close a cycle.
	err = s.depRepo.Transaction(ctx, func(tx *repository.DependencyRepository) error {
		exists, err := tx.Exists(ctx, taskID, dependsOnID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDependencyExists
		}

		edges, err := tx.GetAllForTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if createsCycle(edges, taskID, dependsOnID) {
			return ErrCircularDependency
		}

		return tx.Create(ctx, dep)
	})
	if err != nil {
		return nil, err
	}
	return dep, nil
}

// Remove deletes an edge by id within the tenant.
func (s *DependencyService) Remove(ctx context.Context, tenantID, dependencyID uuid.UUID) error {
	dep, err := s.depRepo.GetByID(ctx, tenantID, dependencyID)
	if err != nil {
		return err
	}
	if dep == nil {
		return ErrDependencyNotFound
	}
	return s.depRepo.Delete(ctx, tenantID, dependencyID)
}

// ListForTask returns the edges where the given task is the depending
// side, in insertion order.
func (s *DependencyService) ListForTask(ctx context.Context, tenantID, taskID uuid.UUID) ([]model.TaskDependency, error) {
	task, err := s.taskRepo.GetByID(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return s.depRepo.GetByTaskID(ctx, tenantID, taskID)
}

// createsCycle reports whether adding "taskID depends on dependsOnID" to
// the existing edge set would make taskID reachable from dependsOnID,
// which would close a cycle. Iterative depth-first search with a visited
// set; O(V+E) and safe on any graph size.
func createsCycle(edges []model.TaskDependency, taskID, dependsOnID uuid.UUID) bool {
	adjacency := make(map[uuid.UUID][]uuid.UUID, len(edges))
	for _, e := range edges {
		adjacency[e.TaskID] = append(adjacency[e.TaskID], e.DependsOnID)
	}
	adjacency[taskID] = append(adjacency[taskID], dependsOnID)

	stack := []uuid.UUID{dependsOnID}
	visited := make(map[uuid.UUID]bool, len(adjacency))
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == taskID {
			return true
		}
		if visited[node] {
			continue
		}
		visited[node] = true
		stack = append(stack, adjacency[node]...)
	}
	return false
}
