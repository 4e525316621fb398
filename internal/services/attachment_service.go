package services

import (
	"context"
	"strconv"
	"time"

	"catering-service/internal/domain"
	"catering-service/internal/infra"
	"catering-service/internal/repository"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

const defaultBlobTimeout = 5 * time.Second

type UploadMeta struct {
	OwnerUserID uint64
	FileName    string
	FileType    string
	EntityType  domain.EntityType
	EntityID    string
	Category    string
}

type ReclaimResult struct {
	DeletedCount int `json:"deletedCount"`
	SkippedCount int `json:"skippedCount"`
}

// AttachmentService owns the file_attachments table. Uploads may arrive
// tagged with a temporary entity id before the order exists; Relink re-points
// them once the order is persisted and Reclaim safely removes the ones that
// never were.
type AttachmentService struct {
	attachments repository.AttachmentRepository
	orders      repository.OrderRepository
	blobs       infra.BlobStoreInterface
	blobTimeout time.Duration
}

func NewAttachmentService(a repository.AttachmentRepository, o repository.OrderRepository, b infra.BlobStoreInterface) *AttachmentService {
	return &AttachmentService{
		attachments: a,
		orders:      o,
		blobs:       b,
		blobTimeout: defaultBlobTimeout,
	}
}

// RecordUpload stores the blob under a fresh random key and persists its
// metadata.
func (s *AttachmentService) RecordUpload(ctx context.Context, meta UploadMeta, data []byte) (*domain.FileAttachment, error) {
	if meta.OwnerUserID == 0 {
		return nil, domain.NewValidationError("ownerUserId", "is required")
	}
	if meta.FileName == "" {
		return nil, domain.NewValidationError("fileName", "is required")
	}
	if _, ok := meta.EntityType.OrderVariantFor(); !ok &&
		meta.EntityType != domain.EntityUser && meta.EntityType != domain.EntityOther {
		return nil, domain.NewValidationError("entityType", "unknown entity type")
	}

	key := uuid.NewString()
	url, err := s.blobs.Put(ctx, key, data, meta.FileType)
	if err != nil {
		return nil, err
	}

	attachment := &domain.FileAttachment{
		OwnerUserID: meta.OwnerUserID,
		FileName:    meta.FileName,
		FileType:    meta.FileType,
		FileSize:    int64(len(data)),
		StorageKey:  key,
		StorageURL:  url,
		EntityType:  meta.EntityType,
		EntityID:    meta.EntityID,
		Category:    meta.Category,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// Relink re-points every attachment under tempEntityID to the persisted
// order, scoped to the owner. Returns the number of attachments moved.
func (s *AttachmentService) Relink(ctx context.Context, tempEntityID string, real domain.OrderRef, ownerUserID uint64) (int64, error) {
	if tempEntityID == "" {
		return 0, domain.NewValidationError("tempEntityId", "is required")
	}
	entityType := domain.EntityCateringRequest
	if real.Variant == domain.VariantOnDemand {
		entityType = domain.EntityOnDemand
	}
	return s.attachments.Relink(ctx, tempEntityID, entityType, strconv.FormatUint(real.ID, 10), ownerUserID)
}

// ReclaimFiles deletes the given attachments unless they are linked to a
// persisted order or owned by someone else; those are skipped, never failed.
func (s *AttachmentService) ReclaimFiles(ctx context.Context, fileIDs []uint64, ownerUserID uint64) (ReclaimResult, error) {
	candidates, err := s.attachments.FindByIDs(ctx, fileIDs)
	if err != nil {
		return ReclaimResult{}, err
	}
	return s.reclaim(ctx, candidates, ownerUserID)
}

// ReclaimEntity deletes every owner-scoped attachment still tagged with the
// given entity id, subject to the same safety rules.
func (s *AttachmentService) ReclaimEntity(ctx context.Context, entityID string, ownerUserID uint64) (ReclaimResult, error) {
	candidates, err := s.attachments.FindByEntityID(ctx, entityID, ownerUserID)
	if err != nil {
		return ReclaimResult{}, err
	}
	return s.reclaim(ctx, candidates, ownerUserID)
}

func (s *AttachmentService) reclaim(ctx context.Context, candidates []domain.FileAttachment, ownerUserID uint64) (ReclaimResult, error) {
	var result ReclaimResult
	for i := range candidates {
		a := &candidates[i]
		if a.OwnerUserID != ownerUserID {
			result.SkippedCount++
			continue
		}

		linked, err := s.linkedToPersistedOrder(ctx, a)
		if err != nil {
			return result, err
		}
		if linked {
			// The order exists: the attachment is off limits regardless of
			// what the caller asked for. Guards the race where cleanup of
			// "abandoned" uploads arrives after the order was created.
			result.SkippedCount++
			continue
		}

		// Two-phase delete: blob first, best-effort and bounded. Metadata
		// deletion is the authoritative step; an orphaned blob is acceptable,
		// a surviving metadata row is not.
		blobCtx, cancel := context.WithTimeout(ctx, s.blobTimeout)
		if err := s.blobs.Remove(blobCtx, []string{a.StorageKey}); err != nil {
			logrus.WithError(err).WithField("key", a.StorageKey).Warn("blob remove failed, leaving orphan")
		}
		cancel()

		// Keyed on the entity id the candidate was fetched under, so a row a
		// concurrent Relink just pointed at a persisted order survives.
		deleted, err := s.attachments.Delete(ctx, a.ID, a.EntityID)
		if err != nil {
			return result, err
		}
		if deleted {
			result.DeletedCount++
		} else {
			// A concurrent reclaim or relink got there first.
			result.SkippedCount++
		}
	}
	return result, nil
}

// linkedToPersistedOrder resolves whether the attachment's entity currently
// identifies an order row. The switch over EntityType is exhaustive: user and
// other never resolve to an order, and a non-numeric entity id is a temporary
// key that cannot either.
func (s *AttachmentService) linkedToPersistedOrder(ctx context.Context, a *domain.FileAttachment) (bool, error) {
	variant, ok := a.EntityType.OrderVariantFor()
	if !ok {
		return false, nil
	}
	id, err := strconv.ParseUint(a.EntityID, 10, 64)
	if err != nil {
		return false, nil
	}
	placed, err := s.orders.FindByRef(ctx, domain.OrderRef{Variant: variant, ID: id})
	if err != nil {
		return false, err
	}
	return placed != nil, nil
}
