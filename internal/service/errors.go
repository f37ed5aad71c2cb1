package service

import "errors"

// Service errors, grouped by how the HTTP layer reports them.
//
// Not-found errors are deliberately identical whether the entity is
// missing or belongs to another tenant, so callers cannot probe for
// rows outside their tenant.
var (
	// Not found (404)
	ErrTaskNotFound       = errors.New("task not found")
	ErrDependencyNotFound = errors.New("dependency not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrStatusNotFound     = errors.New("status not found")
	ErrTemplateNotFound   = errors.New("sprint template not found")

	// Invalid argument (400)
	ErrSelfDependency     = errors.New("a task cannot depend on itself")
	ErrCircularDependency = errors.New("would create a circular dependency")
	ErrScopeConflict      = errors.New("status cannot be scoped to both a project and a department")
	ErrDefaultStatusInUse = errors.New("cannot delete the default status; set another default first")
	ErrNoStatusIDs        = errors.New("no status ids given")

	// Conflict (409)
	ErrDependencyExists = errors.New("dependency already exists")
	ErrStatusCodeTaken  = errors.New("status code already exists in this scope")
)
