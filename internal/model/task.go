package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task belongs to exactly one project; its tenant is always derived
// through the project, never stored on the task itself.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"not null"`
	Description string
	StatusCode  string         `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Project Project `gorm:"foreignKey:ProjectID"`
	Parent  *Task   `gorm:"foreignKey:ParentID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
