package mysql

import (
	"context"
	"errors"
	"time"

	"catering-service/internal/domain"
	"catering-service/internal/repository"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateCatering(ctx context.Context, order *domain.CateringOrder, pickup, delivery *domain.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveAddress(tx, pickup, "pickupAddressId"); err != nil {
			return err
		}
		if err := resolveAddress(tx, delivery, "deliveryAddressId"); err != nil {
			return err
		}
		order.PickupAddressID = pickup.ID
		order.DeliveryAddressID = delivery.ID
		order.Status = domain.OrderStatusActive
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return claimOrderNumber(tx, order.OrderNumber, domain.VariantCatering, order.ID)
	})
}

func (r *orderRepo) CreateOnDemand(ctx context.Context, order *domain.OnDemandOrder, pickup, delivery *domain.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resolveAddress(tx, pickup, "pickupAddressId"); err != nil {
			return err
		}
		if err := resolveAddress(tx, delivery, "deliveryAddressId"); err != nil {
			return err
		}
		order.PickupAddressID = pickup.ID
		order.DeliveryAddressID = delivery.ID
		order.Status = domain.OrderStatusActive
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return claimOrderNumber(tx, order.OrderNumber, domain.VariantOnDemand, order.ID)
	})
}

// resolveAddress inserts a new address or verifies a referenced one exists.
// Rows referenced by orders are never mutated here.
func resolveAddress(tx *gorm.DB, a *domain.Address, field string) error {
	if a.ID == 0 {
		return tx.Create(a).Error
	}
	var existing domain.Address
	if err := tx.First(&existing, a.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewValidationError(field, "address does not exist")
		}
		return err
	}
	*a = existing
	return nil
}

// claimOrderNumber inserts into the shared numbering namespace. The unique
// index on order_numbers is the authoritative duplicate guard across both
// order tables.
func claimOrderNumber(tx *gorm.DB, orderNumber string, variant domain.OrderVariant, orderID uint64) error {
	claim := domain.OrderNumberClaim{
		OrderNumber: orderNumber,
		Variant:     variant,
		OrderID:     orderID,
	}
	if err := tx.Create(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateOrderNumber
		}
		return err
	}
	return nil
}

func (r *orderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PlacedOrder, error) {
	var claim domain.OrderNumberClaim
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logrus.WithError(err).Error("order number lookup failed")
		return nil, err
	}
	return r.FindByRef(ctx, domain.OrderRef{Variant: claim.Variant, ID: claim.OrderID})
}

func (r *orderRepo) FindByRef(ctx context.Context, ref domain.OrderRef) (*domain.PlacedOrder, error) {
	switch ref.Variant {
	case domain.VariantCatering:
		var o domain.CateringOrder
		if err := r.db.WithContext(ctx).First(&o, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &domain.PlacedOrder{Variant: domain.VariantCatering, Catering: &o}, nil
	default:
		var o domain.OnDemandOrder
		if err := r.db.WithContext(ctx).First(&o, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &domain.PlacedOrder{Variant: domain.VariantOnDemand, OnDemand: &o}, nil
	}
}

func (r *orderRepo) TransitionStatus(ctx context.Context, ref domain.OrderRef, from, to domain.OrderStatus) (bool, error) {
	updates := map[string]any{"status": to}
	if to == domain.OrderStatusCompleted {
		now := time.Now()
		updates["complete_date_time"] = &now
	}
	res := orderModel(r.db.WithContext(ctx), ref.Variant).
		Where("id = ? AND status = ?", ref.ID, from).
		Updates(updates)
	if res.Error != nil {
		logrus.WithError(res.Error).Error("order status transition failed")
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// orderModel scopes a query to the variant's table.
func orderModel(db *gorm.DB, variant domain.OrderVariant) *gorm.DB {
	if variant == domain.VariantCatering {
		return db.Model(&domain.CateringOrder{})
	}
	return db.Model(&domain.OnDemandOrder{})
}
