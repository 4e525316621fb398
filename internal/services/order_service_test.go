package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"catering-service/internal/domain"
	"catering-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_CreateCateringOrder(t *testing.T) {
	tests := []struct {
		name          string
		draft         func() CateringDraft
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedError error
		expectedField string
		expectSuccess bool
	}{
		{
			name:  "successful creation",
			draft: validCateringDraft,
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("FindByOrderNumber", mock.Anything, TestOrderNumber).Return(nil, nil)
				mockRepo.On("CreateCatering", mock.Anything, mock.AnythingOfType("*domain.CateringOrder"), mock.AnythingOfType("*domain.Address"), mock.AnythingOfType("*domain.Address")).
					Return(nil).
					Run(func(args mock.Arguments) {
						order := args.Get(1).(*domain.CateringOrder)
						order.ID = TestOrderID
					})
				mockPub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			expectSuccess: true,
		},
		{
			name: "zero headcount rejected before storage",
			draft: func() CateringDraft {
				d := validCateringDraft()
				d.Headcount = 0
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "headcount",
		},
		{
			name: "hosts required when host needed",
			draft: func() CateringDraft {
				d := validCateringDraft()
				d.NeedHost = true
				d.NumberOfHosts = 0
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "numberOfHosts",
		},
		{
			name: "negative total rejected",
			draft: func() CateringDraft {
				d := validCateringDraft()
				d.OrderTotal = -1
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "orderTotal",
		},
		{
			name: "incomplete pickup address rejected",
			draft: func() CateringDraft {
				d := validCateringDraft()
				d.Pickup.Zip = ""
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "pickupAddress",
		},
		{
			name: "arrival before pickup rejected",
			draft: func() CateringDraft {
				d := validCateringDraft()
				d.ArrivalDateTime = d.PickupDateTime.Add(-time.Hour)
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "arrivalDateTime",
		},
		{
			name:  "duplicate caught by advisory pre-check",
			draft: validCateringDraft,
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("FindByOrderNumber", mock.Anything, TestOrderNumber).
					Return(placedCatering(7, domain.OrderStatusActive), nil)
			},
			expectedError: domain.ErrDuplicateOrderNumber,
		},
		{
			name:  "duplicate caught by unique index under race",
			draft: validCateringDraft,
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				// Pre-check saw nothing; the concurrent writer won the index.
				mockRepo.On("FindByOrderNumber", mock.Anything, TestOrderNumber).Return(nil, nil)
				mockRepo.On("CreateCatering", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(domain.ErrDuplicateOrderNumber)
			},
			expectedError: domain.ErrDuplicateOrderNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo, mockPub)

			service := NewOrderService(mockRepo, mockPub)
			result, err := service.CreateCateringOrder(context.Background(), tt.draft())

			if tt.expectSuccess {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, TestOrderNumber, result.OrderNumber)
				assert.Equal(t, domain.OrderStatusActive, result.Status)
				assert.Equal(t, TestOrderTotal, result.OrderTotal)
				assert.Equal(t, TestTip, result.Tip)
				assert.Equal(t, 50, result.Headcount)
				time.Sleep(100 * time.Millisecond)
			} else {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				if tt.expectedField != "" {
					var ve *domain.ValidationError
					assert.ErrorAs(t, err, &ve)
					assert.Equal(t, tt.expectedField, ve.Field)
					mockRepo.AssertNotCalled(t, "CreateCatering", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				}
				mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_CreateCateringOrder_GeneratesOrderNumber(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockRepo.On("FindByOrderNumber", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
	mockRepo.On("CreateCatering", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockPub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()

	draft := validCateringDraft()
	draft.OrderNumber = ""

	service := NewOrderService(mockRepo, mockPub)
	result, err := service.CreateCateringOrder(context.Background(), draft)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.OrderNumber, "CATER-"))
	time.Sleep(100 * time.Millisecond)
}

func TestOrderService_CreateOnDemandOrder(t *testing.T) {
	tests := []struct {
		name          string
		draft         func() OnDemandDraft
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedField string
		expectSuccess bool
	}{
		{
			name:  "successful creation with generated OD number",
			draft: validOnDemandDraft,
			setupMocks: func(mockRepo *mocks.MockOrderRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("FindByOrderNumber", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
				mockRepo.On("CreateOnDemand", mock.Anything, mock.AnythingOfType("*domain.OnDemandOrder"), mock.Anything, mock.Anything).Return(nil)
				mockPub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()
			},
			expectSuccess: true,
		},
		{
			name: "missing item rejected",
			draft: func() OnDemandDraft {
				d := validOnDemandDraft()
				d.ItemDelivered = ""
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "itemDelivered",
		},
		{
			name: "unknown vehicle type rejected",
			draft: func() OnDemandDraft {
				d := validOnDemandDraft()
				d.VehicleType = "SCOOTER"
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "vehicleType",
		},
		{
			name: "negative length rejected",
			draft: func() OnDemandDraft {
				d := validOnDemandDraft()
				d.Length = -1
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "length",
		},
		{
			name: "negative width rejected",
			draft: func() OnDemandDraft {
				d := validOnDemandDraft()
				d.Width = -0.5
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "width",
		},
		{
			name: "negative height rejected",
			draft: func() OnDemandDraft {
				d := validOnDemandDraft()
				d.Height = -2
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "height",
		},
		{
			name: "negative weight rejected",
			draft: func() OnDemandDraft {
				d := validOnDemandDraft()
				d.Weight = -2.5
				return d
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedField: "weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo, mockPub)

			service := NewOrderService(mockRepo, mockPub)
			result, err := service.CreateOnDemandOrder(context.Background(), tt.draft())

			if tt.expectSuccess {
				assert.NoError(t, err)
				assert.True(t, strings.HasPrefix(result.OrderNumber, "OD-"))
				assert.Equal(t, domain.OrderStatusActive, result.Status)
				time.Sleep(100 * time.Millisecond)
			} else {
				var ve *domain.ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.expectedField, ve.Field)
				mockRepo.AssertNotCalled(t, "CreateOnDemand", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ref := domain.OrderRef{Variant: domain.VariantCatering, ID: TestOrderID}

	tests := []struct {
		name          string
		current       domain.OrderStatus
		requested     domain.OrderStatus
		expectedError error
	}{
		{name: "active to assigned", current: domain.OrderStatusActive, requested: domain.OrderStatusAssigned},
		{name: "active to cancelled", current: domain.OrderStatusActive, requested: domain.OrderStatusCancelled},
		{name: "assigned to completed", current: domain.OrderStatusAssigned, requested: domain.OrderStatusCompleted},
		{name: "assigned to cancelled", current: domain.OrderStatusAssigned, requested: domain.OrderStatusCancelled},
		{name: "active straight to completed fails", current: domain.OrderStatusActive, requested: domain.OrderStatusCompleted, expectedError: domain.ErrInvalidStateTransition},
		{name: "completed back to assigned fails", current: domain.OrderStatusCompleted, requested: domain.OrderStatusAssigned, expectedError: domain.ErrInvalidStateTransition},
		{name: "cancelled is terminal", current: domain.OrderStatusCancelled, requested: domain.OrderStatusActive, expectedError: domain.ErrInvalidStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)

			mockRepo.On("FindByRef", mock.Anything, ref).Return(placedCatering(TestOrderID, tt.current), nil).Once()
			if tt.expectedError == nil {
				mockRepo.On("TransitionStatus", mock.Anything, ref, tt.current, tt.requested).Return(true, nil)
				mockRepo.On("FindByRef", mock.Anything, ref).Return(placedCatering(TestOrderID, tt.requested), nil).Once()
			}

			service := NewOrderService(mockRepo, mockPub)
			result, err := service.UpdateStatus(context.Background(), ref, tt.requested)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				mockRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.requested, result.Base().Status)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatus_ConcurrentMoveLoses(t *testing.T) {
	ref := domain.OrderRef{Variant: domain.VariantCatering, ID: TestOrderID}
	mockRepo := new(mocks.MockOrderRepository)
	mockPub := new(mocks.MockPublisher)

	mockRepo.On("FindByRef", mock.Anything, ref).Return(placedCatering(TestOrderID, domain.OrderStatusActive), nil).Once()
	mockRepo.On("TransitionStatus", mock.Anything, ref, domain.OrderStatusActive, domain.OrderStatusAssigned).Return(false, nil)

	service := NewOrderService(mockRepo, mockPub)
	result, err := service.UpdateStatus(context.Background(), ref, domain.OrderStatusAssigned)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Nil(t, result)
}

func TestOrderService_FindByOrderNumber(t *testing.T) {
	tests := []struct {
		name          string
		orderNumber   string
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError error
	}{
		{
			name:        "round trip returns identical totals",
			orderNumber: TestOrderNumber,
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("FindByOrderNumber", mock.Anything, TestOrderNumber).
					Return(placedCatering(TestOrderID, domain.OrderStatusActive), nil)
			},
		},
		{
			name:        "not found",
			orderNumber: "CATER-missing",
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("FindByOrderNumber", mock.Anything, "CATER-missing").Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name:        "storage failure propagates",
			orderNumber: TestOrderNumber,
			setupMocks: func(mockRepo *mocks.MockOrderRepository) {
				mockRepo.On("FindByOrderNumber", mock.Anything, TestOrderNumber).
					Return(nil, errors.New("connection reset"))
			},
			expectedError: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			mockPub := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo)

			service := NewOrderService(mockRepo, mockPub)
			result, err := service.FindByOrderNumber(context.Background(), tt.orderNumber)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, TestOrderNumber, result.Base().OrderNumber)
				assert.Equal(t, TestOrderTotal, result.Base().OrderTotal)
				assert.Equal(t, TestTip, result.Base().Tip)
				assert.Equal(t, domain.VariantCatering, result.Variant)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
