package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SprintTemplate stamps out sprints for projects in its department.
// NamePattern may contain a {number} placeholder.
type SprintTemplate struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	NamePattern  string
	DurationDays int       `gorm:"not null"`
	IsDefault    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Department Department `gorm:"foreignKey:DepartmentID"`
}

func (t *SprintTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Sprint struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Project Project `gorm:"foreignKey:ProjectID"`
}

func (s *Sprint) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
