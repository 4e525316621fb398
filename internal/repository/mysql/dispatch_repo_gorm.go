package mysql

import (
	"context"
	"errors"

	"catering-service/internal/domain"
	"catering-service/internal/repository"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type dispatchRepo struct {
	db *gorm.DB
}

func NewDispatchRepository(db *gorm.DB) repository.DispatchRepository {
	return &dispatchRepo{db: db}
}

// refColumn returns the FK column holding the order id for the ref's variant.
func refColumn(ref domain.OrderRef) string {
	if ref.Variant == domain.VariantCatering {
		return "catering_request_id"
	}
	return "on_demand_id"
}

func (r *dispatchRepo) Assign(ctx context.Context, dispatch *domain.Dispatch) error {
	ref := dispatch.OrderRef()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Supersede the prior active dispatch; history rows are never deleted.
		err := tx.Model(&domain.Dispatch{}).
			Where(refColumn(ref)+" = ? AND superseded = ?", ref.ID, false).
			Update("superseded", true).Error
		if err != nil {
			return err
		}

		dispatch.DriverStatus = domain.DriverStatusAssigned
		dispatch.Superseded = false
		if err := tx.Create(dispatch).Error; err != nil {
			return err
		}

		event := domain.DriverStatusEvent{
			DispatchID: dispatch.ID,
			Status:     domain.DriverStatusAssigned,
			RecordedBy: dispatch.DispatchingUserID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		// Flip the order from ACTIVE to ASSIGNED. Zero rows means the order moved
		// concurrently: already ASSIGNED is fine, terminal is not.
		res := orderModel(tx, ref.Variant).
			Where("id = ? AND status = ?", ref.ID, domain.OrderStatusActive).
			Update("status", domain.OrderStatusAssigned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var status domain.OrderStatus
			err := orderModel(tx, ref.Variant).
				Select("status").
				Where("id = ?", ref.ID).
				Scan(&status).Error
			if err != nil {
				return err
			}
			if status != domain.OrderStatusAssigned {
				return domain.ErrOrderNotAssignable
			}
		}
		return nil
	})
}

func (r *dispatchRepo) Current(ctx context.Context, ref domain.OrderRef) (*domain.Dispatch, error) {
	var d domain.Dispatch
	err := r.db.WithContext(ctx).
		Where(refColumn(ref)+" = ? AND superseded = ?", ref.ID, false).
		Order("created_at DESC").
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logrus.WithError(err).Error("current dispatch lookup failed")
		return nil, err
	}
	return &d, nil
}

func (r *dispatchRepo) History(ctx context.Context, ref domain.OrderRef) ([]domain.Dispatch, error) {
	var out []domain.Dispatch
	err := r.db.WithContext(ctx).
		Where(refColumn(ref)+" = ?", ref.ID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dispatchRepo) AdvanceDriverStatus(ctx context.Context, dispatchID uint64, from, to domain.DriverStatus, recordedBy uint64) (bool, error) {
	advanced := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Dispatch{}).
			Where("id = ? AND driver_status = ?", dispatchID, from).
			Update("driver_status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		advanced = true
		event := domain.DriverStatusEvent{
			DispatchID: dispatchID,
			Status:     to,
			RecordedBy: recordedBy,
		}
		return tx.Create(&event).Error
	})
	return advanced, err
}

func (r *dispatchRepo) StatusEvents(ctx context.Context, dispatchID uint64) ([]domain.DriverStatusEvent, error) {
	var out []domain.DriverStatusEvent
	err := r.db.WithContext(ctx).
		Where("dispatch_id = ?", dispatchID).
		Order("recorded_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
