package repository

import (
	"context"

	"catering-service/internal/domain"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.FileAttachment) error
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.FileAttachment, error)
	FindByEntityID(ctx context.Context, entityID string, ownerUserID uint64) ([]domain.FileAttachment, error)

	// Relink re-points every attachment tagged with tempEntityID to the new
	// entity, scoped to the owner. Returns the number of rows updated.
	Relink(ctx context.Context, tempEntityID string, entityType domain.EntityType, newEntityID string, ownerUserID uint64) (int64, error)

	// Delete removes one metadata row, conditioned on entity_id still holding
	// the value the caller fetched it under. Idempotent: returns false when
	// the row was already gone or was re-pointed in the meantime.
	Delete(ctx context.Context, id uint64, entityID string) (bool, error)
}
