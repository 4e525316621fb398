package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catering-service/internal/domain"
	rabbit "catering-service/internal/infra/rabbitmq"
	"catering-service/internal/repository"

	"github.com/go-redis/redis/v8"
	logrus "github.com/sirupsen/logrus"
)

type DispatchService struct {
	dispatches  repository.DispatchRepository
	orders      repository.OrderRepository
	users       repository.UserRepository
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
}

func NewDispatchService(d repository.DispatchRepository, o repository.OrderRepository, u repository.UserRepository, pub rabbit.PublisherInterface) *DispatchService {
	return &DispatchService{
		dispatches: d,
		orders:     o,
		users:      u,
		publisher:  pub,
	}
}

func (s *DispatchService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// AssignDriver binds a driver to an order. The prior dispatch, if any, is
// superseded and kept for the audit trail; reassigning the same driver to an
// already assigned order is a no-op.
func (s *DispatchService) AssignDriver(ctx context.Context, ref domain.OrderRef, driverID, dispatchingUserID uint64) (*domain.Dispatch, error) {
	driver, err := s.getUserCached(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil || driver.AccountType != domain.AccountDriver {
		return nil, domain.ErrDriverNotEligible
	}

	dispatcher, err := s.getUserCached(ctx, dispatchingUserID)
	if err != nil {
		return nil, err
	}
	if dispatcher == nil || !dispatcher.AccountType.IsStaff() {
		return nil, domain.ErrUnauthorized
	}

	placed, err := s.orders.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if placed == nil {
		return nil, ErrOrderNotFound
	}
	status := placed.Base().Status
	if status == domain.OrderStatusCancelled || status == domain.OrderStatusCompleted {
		return nil, domain.ErrOrderNotAssignable
	}

	current, err := s.dispatches.Current(ctx, ref)
	if err != nil {
		return nil, err
	}
	if current != nil && current.DriverID == driverID && status == domain.OrderStatusAssigned {
		return current, nil
	}

	dispatch := &domain.Dispatch{
		DriverID:          driverID,
		DispatchingUserID: dispatchingUserID,
		DriverStatus:      domain.DriverStatusAssigned,
	}
	dispatch.SetOrderRef(ref)

	if err := s.dispatches.Assign(ctx, dispatch); err != nil {
		return nil, err
	}

	go s.publishDispatchAssigned(context.Background(), dispatch)

	return dispatch, nil
}

func (s *DispatchService) CurrentDispatch(ctx context.Context, ref domain.OrderRef) (*domain.Dispatch, error) {
	return s.dispatches.Current(ctx, ref)
}

func (s *DispatchService) DispatchHistory(ctx context.Context, ref domain.OrderRef) ([]domain.Dispatch, error) {
	return s.dispatches.History(ctx, ref)
}

// getUserCached reads the profile registry through redis when available;
// profiles change rarely and only authorization fields are consulted.
func (s *DispatchService) getUserCached(ctx context.Context, userID uint64) (*domain.User, error) {
	cacheKey := fmt.Sprintf("user:%d", userID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var u domain.User
			if err := json.Unmarshal([]byte(cached), &u); err == nil {
				return &u, nil
			}
		}
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && u != nil {
		if data, err := json.Marshal(u); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return u, nil
}

func (s *DispatchService) publishDispatchAssigned(ctx context.Context, dispatch *domain.Dispatch) {
	ref := dispatch.OrderRef()
	evt := domain.DispatchAssignedEvent{
		DispatchID:        dispatch.ID,
		OrderID:           ref.ID,
		Variant:           ref.Variant,
		DriverID:          dispatch.DriverID,
		DispatchingUserID: dispatch.DispatchingUserID,
		CreatedAt:         dispatch.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "dispatch.assigned", evt); err != nil {
		logrus.WithError(err).Warn("failed to publish dispatch.assigned")
	}
}
