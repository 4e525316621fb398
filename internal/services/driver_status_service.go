package services

import (
	"context"
	"time"

	"catering-service/internal/domain"
	rabbit "catering-service/internal/infra/rabbitmq"
	"catering-service/internal/repository"

	logrus "github.com/sirupsen/logrus"
)

// DriverStatusService advances the driver-facing progression. It never
// touches the order status: office staff and the field driver report through
// two separate state machines that are only surfaced together.
type DriverStatusService struct {
	dispatches repository.DispatchRepository
	users      repository.UserRepository
	publisher  rabbit.PublisherInterface
}

func NewDriverStatusService(d repository.DispatchRepository, u repository.UserRepository, pub rabbit.PublisherInterface) *DriverStatusService {
	return &DriverStatusService{
		dispatches: d,
		users:      u,
		publisher:  pub,
	}
}

// Advance moves the dispatch's driver status forward. Same-status
// re-submission is an idempotent no-op; backward moves fail. Forward skips
// are allowed.
func (s *DriverStatusService) Advance(ctx context.Context, ref domain.OrderRef, requested domain.DriverStatus, actingUserID uint64) (domain.DriverStatus, error) {
	if requested.Index() < 0 {
		return "", domain.NewValidationError("driverStatus", "unknown status")
	}

	dispatch, err := s.dispatches.Current(ctx, ref)
	if err != nil {
		return "", err
	}
	if dispatch == nil {
		return "", ErrDispatchNotFound
	}

	if actingUserID != dispatch.DriverID {
		actor, err := s.users.FindByID(ctx, actingUserID)
		if err != nil {
			return "", err
		}
		if actor == nil || !actor.AccountType.IsStaff() {
			return "", domain.ErrUnauthorized
		}
	}

	current := dispatch.DriverStatus
	if requested == current {
		return current, nil
	}
	if !current.CanAdvanceTo(requested) {
		return "", domain.ErrInvalidStatusTransition
	}

	advanced, err := s.dispatches.AdvanceDriverStatus(ctx, dispatch.ID, current, requested, actingUserID)
	if err != nil {
		return "", err
	}
	if !advanced {
		// Someone else moved the status between our read and write. Re-read:
		// landing on the requested value concurrently is still a success.
		latest, err := s.dispatches.Current(ctx, ref)
		if err != nil {
			return "", err
		}
		if latest != nil && latest.DriverStatus == requested {
			return requested, nil
		}
		return "", domain.ErrInvalidStatusTransition
	}

	go s.publishStatusUpdated(context.Background(), dispatch.ID, ref, requested)

	return requested, nil
}

// Current returns the driver-reported status of the order's active dispatch.
func (s *DriverStatusService) Current(ctx context.Context, ref domain.OrderRef) (domain.DriverStatus, error) {
	dispatch, err := s.dispatches.Current(ctx, ref)
	if err != nil {
		return "", err
	}
	if dispatch == nil {
		return "", ErrDispatchNotFound
	}
	return dispatch.DriverStatus, nil
}

// Timeline returns the recorded progression events for the active dispatch.
func (s *DriverStatusService) Timeline(ctx context.Context, ref domain.OrderRef) ([]domain.DriverStatusEvent, error) {
	dispatch, err := s.dispatches.Current(ctx, ref)
	if err != nil {
		return nil, err
	}
	if dispatch == nil {
		return nil, ErrDispatchNotFound
	}
	return s.dispatches.StatusEvents(ctx, dispatch.ID)
}

func (s *DriverStatusService) publishStatusUpdated(ctx context.Context, dispatchID uint64, ref domain.OrderRef, status domain.DriverStatus) {
	evt := domain.DriverStatusUpdatedEvent{
		DispatchID: dispatchID,
		OrderID:    ref.ID,
		Variant:    ref.Variant,
		Status:     status,
		RecordedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "driver.status_updated", evt); err != nil {
		logrus.WithError(err).Warn("failed to publish driver.status_updated")
	}
}
