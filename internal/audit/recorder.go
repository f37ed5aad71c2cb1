package audit

import (
	"context"
	"log"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// Recorder appends activity entries as a side effect of core mutations.
// A failed write is logged and swallowed; it must never roll back the
// mutation it describes.
type Recorder struct {
	repo *repository.ActivityRepository
}

func NewRecorder(repo *repository.ActivityRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, tenantID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) {
	entry := &model.ActivityLog{
		TenantID:   tenantID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️  Failed to record activity %s %s: %v", action, entityType, err)
	}
}
