package mysql

import (
	"context"

	"catering-service/internal/domain"
	"catering-service/internal/repository"

	"gorm.io/gorm"
)

type attachmentRepo struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) repository.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, attachment *domain.FileAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.FileAttachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.FileAttachment
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attachmentRepo) FindByEntityID(ctx context.Context, entityID string, ownerUserID uint64) ([]domain.FileAttachment, error) {
	var out []domain.FileAttachment
	err := r.db.WithContext(ctx).
		Where("entity_id = ? AND owner_user_id = ?", entityID, ownerUserID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attachmentRepo) Relink(ctx context.Context, tempEntityID string, entityType domain.EntityType, newEntityID string, ownerUserID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.FileAttachment{}).
		Where("entity_id = ? AND owner_user_id = ?", tempEntityID, ownerUserID).
		Updates(map[string]any{
			"entity_type": entityType,
			"entity_id":   newEntityID,
		})
	return res.RowsAffected, res.Error
}

func (r *attachmentRepo) Delete(ctx context.Context, id uint64, entityID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND entity_id = ?", id, entityID).
		Delete(&domain.FileAttachment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
