package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catering-service/internal/domain"
	rabbit "catering-service/internal/infra/rabbitmq"
	"catering-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrDispatchNotFound = errors.New("no driver assigned to this order")
)

const (
	cateringNumberPrefix = "CATER"
	onDemandNumberPrefix = "OD"
)

// AddressInput is either a reference to an existing address (ID set) or a
// full payload to insert inline with the order.
type AddressInput struct {
	ID           uint64
	Street1      string
	Street2      string
	City         string
	State        string
	Zip          string
	County       string
	IsRestaurant bool
	IsShared     bool
}

type OrderDraft struct {
	UserID          uint64
	OrderNumber     string
	Pickup          AddressInput
	Delivery        AddressInput
	PickupDateTime  time.Time
	ArrivalDateTime time.Time
	OrderTotal      int64
	Tip             int64
}

type CateringDraft struct {
	OrderDraft
	Headcount     int
	NeedHost      bool
	HoursNeeded   int
	NumberOfHosts int
}

type OnDemandDraft struct {
	OrderDraft
	ItemDelivered string
	VehicleType   string
	Length        float64
	Width         float64
	Height        float64
	Weight        float64
}

var validVehicleTypes = map[string]bool{
	"CAR":   true,
	"VAN":   true,
	"TRUCK": true,
}

type OrderService struct {
	repo        repository.OrderRepository
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *OrderService) CreateCateringOrder(ctx context.Context, draft CateringDraft) (*domain.CateringOrder, error) {
	if err := validateOrderDraft(&draft.OrderDraft); err != nil {
		return nil, err
	}
	if draft.Headcount <= 0 {
		return nil, domain.NewValidationError("headcount", "must be positive")
	}
	if draft.HoursNeeded < 0 {
		return nil, domain.NewValidationError("hoursNeeded", "must not be negative")
	}
	if draft.NeedHost && draft.NumberOfHosts <= 0 {
		return nil, domain.NewValidationError("numberOfHosts", "required when a host is needed")
	}

	number := draft.OrderNumber
	if number == "" {
		number = newOrderNumber(cateringNumberPrefix)
	}
	if err := s.checkDuplicate(ctx, number); err != nil {
		return nil, err
	}

	order := &domain.CateringOrder{
		OrderBase:     newOrderBase(&draft.OrderDraft, number),
		Headcount:     draft.Headcount,
		NeedHost:      draft.NeedHost,
		HoursNeeded:   draft.HoursNeeded,
		NumberOfHosts: draft.NumberOfHosts,
	}
	pickup := addressFromInput(draft.Pickup, draft.UserID)
	delivery := addressFromInput(draft.Delivery, draft.UserID)

	if err := s.repo.CreateCatering(ctx, order, pickup, delivery); err != nil {
		return nil, err
	}

	s.cacheOrderNumber(ctx, number)
	go s.publishOrderCreated(context.Background(), domain.VariantCatering, &order.OrderBase)

	return order, nil
}

func (s *OrderService) CreateOnDemandOrder(ctx context.Context, draft OnDemandDraft) (*domain.OnDemandOrder, error) {
	if err := validateOrderDraft(&draft.OrderDraft); err != nil {
		return nil, err
	}
	if draft.ItemDelivered == "" {
		return nil, domain.NewValidationError("itemDelivered", "is required")
	}
	if !validVehicleTypes[draft.VehicleType] {
		return nil, domain.NewValidationError("vehicleType", "must be one of CAR, VAN, TRUCK")
	}
	if draft.Length < 0 {
		return nil, domain.NewValidationError("length", "must not be negative")
	}
	if draft.Width < 0 {
		return nil, domain.NewValidationError("width", "must not be negative")
	}
	if draft.Height < 0 {
		return nil, domain.NewValidationError("height", "must not be negative")
	}
	if draft.Weight < 0 {
		return nil, domain.NewValidationError("weight", "must not be negative")
	}

	number := draft.OrderNumber
	if number == "" {
		number = newOrderNumber(onDemandNumberPrefix)
	}
	if err := s.checkDuplicate(ctx, number); err != nil {
		return nil, err
	}

	order := &domain.OnDemandOrder{
		OrderBase:     newOrderBase(&draft.OrderDraft, number),
		ItemDelivered: draft.ItemDelivered,
		VehicleType:   draft.VehicleType,
		Length:        draft.Length,
		Width:         draft.Width,
		Height:        draft.Height,
		Weight:        draft.Weight,
	}
	pickup := addressFromInput(draft.Pickup, draft.UserID)
	delivery := addressFromInput(draft.Delivery, draft.UserID)

	if err := s.repo.CreateOnDemand(ctx, order, pickup, delivery); err != nil {
		return nil, err
	}

	s.cacheOrderNumber(ctx, number)
	go s.publishOrderCreated(context.Background(), domain.VariantOnDemand, &order.OrderBase)

	return order, nil
}

func validateOrderDraft(d *OrderDraft) error {
	if d.UserID == 0 {
		return domain.NewValidationError("userId", "is required")
	}
	if err := validateAddressInput(d.Pickup, "pickupAddress"); err != nil {
		return err
	}
	if err := validateAddressInput(d.Delivery, "deliveryAddress"); err != nil {
		return err
	}
	if d.PickupDateTime.IsZero() {
		return domain.NewValidationError("pickupDateTime", "is required")
	}
	if d.ArrivalDateTime.IsZero() {
		return domain.NewValidationError("arrivalDateTime", "is required")
	}
	if d.ArrivalDateTime.Before(d.PickupDateTime) {
		return domain.NewValidationError("arrivalDateTime", "must not precede pickup")
	}
	if d.OrderTotal < 0 {
		return domain.NewValidationError("orderTotal", "must not be negative")
	}
	if d.Tip < 0 {
		return domain.NewValidationError("tip", "must not be negative")
	}
	return nil
}

func validateAddressInput(a AddressInput, field string) error {
	if a.ID != 0 {
		return nil
	}
	if a.Street1 == "" || a.City == "" || a.State == "" || a.Zip == "" {
		return domain.NewValidationError(field, "street1, city, state and zip are required")
	}
	return nil
}

func newOrderBase(d *OrderDraft, number string) domain.OrderBase {
	return domain.OrderBase{
		OrderNumber:     number,
		UserID:          d.UserID,
		PickupDateTime:  d.PickupDateTime,
		ArrivalDateTime: d.ArrivalDateTime,
		OrderTotal:      d.OrderTotal,
		Tip:             d.Tip,
		Status:          domain.OrderStatusActive,
	}
}

func addressFromInput(in AddressInput, userID uint64) *domain.Address {
	return &domain.Address{
		ID:           in.ID,
		Street1:      in.Street1,
		Street2:      in.Street2,
		City:         in.City,
		State:        in.State,
		Zip:          in.Zip,
		County:       in.County,
		IsRestaurant: in.IsRestaurant,
		IsShared:     in.IsShared,
		CreatedBy:    userID,
	}
}

func newOrderNumber(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// checkDuplicate is an advisory fast-fail only: the unique index on the
// numbering namespace remains the real guardian under concurrency.
func (s *OrderService) checkDuplicate(ctx context.Context, number string) error {
	if s.redisClient != nil {
		if _, err := s.redisClient.Get(ctx, orderNumberCacheKey(number)).Result(); err == nil {
			return domain.ErrDuplicateOrderNumber
		}
	}
	existing, err := s.repo.FindByOrderNumber(ctx, number)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateOrderNumber
	}
	return nil
}

func (s *OrderService) cacheOrderNumber(ctx context.Context, number string) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Set(ctx, orderNumberCacheKey(number), 1, time.Minute)
}

func orderNumberCacheKey(number string) string {
	return fmt.Sprintf("ordernum:%s", number)
}

func (s *OrderService) publishOrderCreated(ctx context.Context, variant domain.OrderVariant, base *domain.OrderBase) {
	evt := domain.OrderCreatedEvent{
		OrderID:     base.ID,
		Variant:     variant,
		OrderNumber: base.OrderNumber,
		UserID:      base.UserID,
		OrderTotal:  base.OrderTotal,
		CreatedAt:   base.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		logrus.WithError(err).Warn("failed to publish order.created")
	}
}

// UpdateStatus enforces the legal transition table; illegal moves leave the
// row untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, ref domain.OrderRef, newStatus domain.OrderStatus) (*domain.PlacedOrder, error) {
	placed, err := s.repo.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if placed == nil {
		return nil, ErrOrderNotFound
	}

	current := placed.Base().Status
	if !current.CanTransitionTo(newStatus) {
		return nil, domain.ErrInvalidStateTransition
	}

	ok, err := s.repo.TransitionStatus(ctx, ref, current, newStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent writer moved the order first.
		return nil, domain.ErrInvalidStateTransition
	}

	return s.repo.FindByRef(ctx, ref)
}

func (s *OrderService) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PlacedOrder, error) {
	placed, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if placed == nil {
		return nil, ErrOrderNotFound
	}
	return placed, nil
}
