package repository

import (
	"context"

	"catering-service/internal/domain"
)

type OrderRepository interface {
	// CreateCatering persists the order, its addresses and its order-number
	// claim in one transaction. Addresses with a zero ID are inserted;
	// non-zero IDs are resolved and must exist. A duplicate order number
	// rolls everything back and returns domain.ErrDuplicateOrderNumber.
	CreateCatering(ctx context.Context, order *domain.CateringOrder, pickup, delivery *domain.Address) error
	CreateOnDemand(ctx context.Context, order *domain.OnDemandOrder, pickup, delivery *domain.Address) error

	// FindByOrderNumber is a point read against the shared numbering
	// namespace. Returns nil, nil when absent.
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PlacedOrder, error)
	FindByRef(ctx context.Context, ref domain.OrderRef) (*domain.PlacedOrder, error)

	// TransitionStatus flips status conditioned on the current value so a
	// concurrent writer cannot be overwritten. Returns false when the row
	// was not in `from` anymore.
	TransitionStatus(ctx context.Context, ref domain.OrderRef, from, to domain.OrderStatus) (bool, error)
}
