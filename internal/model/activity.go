package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog is an append-only audit record. The core writes these as a
// side effect and never reads them back.
type ActivityLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"not null"`
	EntityType string    `gorm:"not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null"`
	Detail     string
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
