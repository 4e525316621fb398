package mocks

import (
	"context"

	"catering-service/internal/domain"
	"catering-service/internal/infra"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateCatering(ctx context.Context, order *domain.CateringOrder, pickup, delivery *domain.Address) error {
	args := m.Called(ctx, order, pickup, delivery)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOnDemand(ctx context.Context, order *domain.OnDemandOrder, pickup, delivery *domain.Address) error {
	args := m.Called(ctx, order, pickup, delivery)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PlacedOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacedOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByRef(ctx context.Context, ref domain.OrderRef) (*domain.PlacedOrder, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacedOrder), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(ctx context.Context, ref domain.OrderRef, from, to domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, ref, from, to)
	return args.Bool(0), args.Error(1)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uint64) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByOwner(ctx context.Context, userID uint64) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

type MockDispatchRepository struct {
	mock.Mock
}

func (m *MockDispatchRepository) Assign(ctx context.Context, dispatch *domain.Dispatch) error {
	args := m.Called(ctx, dispatch)
	return args.Error(0)
}

func (m *MockDispatchRepository) Current(ctx context.Context, ref domain.OrderRef) (*domain.Dispatch, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) History(ctx context.Context, ref domain.OrderRef) ([]domain.Dispatch, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) AdvanceDriverStatus(ctx context.Context, dispatchID uint64, from, to domain.DriverStatus, recordedBy uint64) (bool, error) {
	args := m.Called(ctx, dispatchID, from, to, recordedBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatchRepository) StatusEvents(ctx context.Context, dispatchID uint64) ([]domain.DriverStatusEvent, error) {
	args := m.Called(ctx, dispatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DriverStatusEvent), args.Error(1)
}

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.FileAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.FileAttachment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByEntityID(ctx context.Context, entityID string, ownerUserID uint64) ([]domain.FileAttachment, error) {
	args := m.Called(ctx, entityID, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) Relink(ctx context.Context, tempEntityID string, entityType domain.EntityType, newEntityID string, ownerUserID uint64) (int64, error) {
	args := m.Called(ctx, tempEntityID, entityType, newEntityID, ownerUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uint64, entityID string) (bool, error) {
	args := m.Called(ctx, id, entityID)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	args := m.Called(ctx, pattern, data)
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Remove(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockBlobStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

var _ infra.BlobStoreInterface = (*MockBlobStore)(nil)
