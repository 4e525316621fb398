package mysql

import (
	"context"
	"errors"

	"catering-service/internal/domain"
	"catering-service/internal/repository"

	"gorm.io/gorm"
)

type addressRepo struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) Create(ctx context.Context, address *domain.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepo) FindByID(ctx context.Context, id uint64) (*domain.Address, error) {
	var a domain.Address
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) FindByOwner(ctx context.Context, userID uint64) ([]domain.Address, error) {
	var out []domain.Address
	err := r.db.WithContext(ctx).
		Where("created_by = ? OR is_shared = ?", userID, true).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
