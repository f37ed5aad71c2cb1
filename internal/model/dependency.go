package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskDependency is a directed edge: TaskID depends on DependsOnID.
// Edges are immutable once created; delete and recreate to change one.
type TaskDependency struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_depends_on"`
	DependsOnID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_depends_on"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Task      Task `gorm:"foreignKey:TaskID"`
	DependsOn Task `gorm:"foreignKey:DependsOnID"`
}

func (d *TaskDependency) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
