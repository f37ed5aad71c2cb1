package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is scoped to a project or a department, never both.
// With both scope columns null it is a system template.
type TaskStatus struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_status_scope_code"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_status_scope_code"`
	Code         string     `gorm:"not null;uniqueIndex:idx_status_scope_code"`
	Name         string     `gorm:"not null"`
	Color        string
	SortOrder    int       `gorm:"not null;default:0"`
	IsDefault    bool      `gorm:"not null;default:false"`
	IsTerminal   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Project    *Project    `gorm:"foreignKey:ProjectID"`
	Department *Department `gorm:"foreignKey:DepartmentID"`
}

func (s *TaskStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Well-known status codes used by the bootstrap template.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusInReview   = "IN_REVIEW"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
)

// DefaultStatusTemplate is the fixed set stamped out for a project that
// has no statuses of its own and no department statuses to inherit.
func DefaultStatusTemplate() []TaskStatus {
	return []TaskStatus{
		{Code: StatusTodo, Name: "Not Started", Color: "#9ca3af", SortOrder: 0, IsDefault: true},
		{Code: StatusInProgress, Name: "In Progress", Color: "#3b82f6", SortOrder: 1},
		{Code: StatusInReview, Name: "In Review", Color: "#f59e0b", SortOrder: 2},
		{Code: StatusDone, Name: "Completed", Color: "#22c55e", SortOrder: 3, IsTerminal: true},
		{Code: StatusFailed, Name: "Failed", Color: "#ef4444", SortOrder: 4, IsTerminal: true},
		{Code: StatusCancelled, Name: "Cancelled", Color: "#6b7280", SortOrder: 5, IsTerminal: true},
	}
}
