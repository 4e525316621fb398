package repository

import (
	"context"

	"catering-service/internal/domain"
)

type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	// FindByID returns nil, nil when the address does not exist.
	FindByID(ctx context.Context, id uint64) (*domain.Address, error)
	FindByOwner(ctx context.Context, userID uint64) ([]domain.Address, error)
}
