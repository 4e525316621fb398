package services

import (
	"context"

	"catering-service/internal/domain"
	"catering-service/internal/repository"
)

// AddressService is the standalone face of the address registry. Addresses
// created inline with an order go through OrderService's transaction instead.
type AddressService struct {
	addresses repository.AddressRepository
}

func NewAddressService(a repository.AddressRepository) *AddressService {
	return &AddressService{addresses: a}
}

func (s *AddressService) Create(ctx context.Context, input AddressInput, userID uint64) (*domain.Address, error) {
	if err := validateAddressInput(input, "address"); err != nil {
		return nil, err
	}
	address := addressFromInput(input, userID)
	address.ID = 0
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Get(ctx context.Context, id uint64) (*domain.Address, error) {
	return s.addresses.FindByID(ctx, id)
}

// ListForUser returns the user's own addresses plus shared ones.
func (s *AddressService) ListForUser(ctx context.Context, userID uint64) ([]domain.Address, error) {
	return s.addresses.FindByOwner(ctx, userID)
}
