package domain

import "time"

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusAssigned  OrderStatus = "ASSIGNED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// orderTransitions is the legal order-status transition table. CANCELLED and
// COMPLETED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusActive:   {OrderStatusAssigned, OrderStatusCancelled},
	OrderStatusAssigned: {OrderStatusCancelled, OrderStatusCompleted},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderVariant string

const (
	VariantCatering OrderVariant = "catering"
	VariantOnDemand OrderVariant = "on_demand"
)

// OrderRef identifies one order across the two variant tables.
type OrderRef struct {
	Variant OrderVariant
	ID      uint64
}

// OrderBase holds the fields shared by both order variants. Money is in
// cents.
type OrderBase struct {
	ID                uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber       string      `json:"orderNumber" gorm:"size:64;not null;index"`
	UserID            uint64      `json:"userId" gorm:"not null;index"`
	PickupAddressID   uint64      `json:"pickupAddressId" gorm:"not null"`
	DeliveryAddressID uint64      `json:"deliveryAddressId" gorm:"not null"`
	PickupDateTime    time.Time   `json:"pickupDateTime" gorm:"not null"`
	ArrivalDateTime   time.Time   `json:"arrivalDateTime" gorm:"not null"`
	CompleteDateTime  *time.Time  `json:"completeDateTime,omitempty"`
	OrderTotal        int64       `json:"orderTotal" gorm:"not null"`
	Tip               int64       `json:"tip"`
	Status            OrderStatus `json:"status" gorm:"type:varchar(16);default:'ACTIVE';index"`
	CreatedAt         time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

type CateringOrder struct {
	OrderBase
	Headcount     int  `json:"headcount" gorm:"not null"`
	NeedHost      bool `json:"needHost"`
	HoursNeeded   int  `json:"hoursNeeded"`
	NumberOfHosts int  `json:"numberOfHosts"`
}

func (o *CateringOrder) Ref() OrderRef {
	return OrderRef{Variant: VariantCatering, ID: o.ID}
}

type OnDemandOrder struct {
	OrderBase
	ItemDelivered string  `json:"itemDelivered"`
	VehicleType   string  `json:"vehicleType" gorm:"type:varchar(16)"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
}

func (o *OnDemandOrder) Ref() OrderRef {
	return OrderRef{Variant: VariantOnDemand, ID: o.ID}
}

// PlacedOrder is the tagged union returned by lookups that span both
// variants. Exactly one of Catering/OnDemand is set, matching Variant.
type PlacedOrder struct {
	Variant  OrderVariant   `json:"variant"`
	Catering *CateringOrder `json:"catering,omitempty"`
	OnDemand *OnDemandOrder `json:"onDemand,omitempty"`
}

func (p *PlacedOrder) Base() *OrderBase {
	if p.Variant == VariantCatering {
		return &p.Catering.OrderBase
	}
	return &p.OnDemand.OrderBase
}

func (p *PlacedOrder) Ref() OrderRef {
	return OrderRef{Variant: p.Variant, ID: p.Base().ID}
}

// OrderNumberClaim is the single uniqueness namespace shared by both order
// tables. The unique index here is the authoritative duplicate guard; the
// claim row is inserted in the same transaction as the order row.
type OrderNumberClaim struct {
	ID          uint64       `gorm:"primaryKey;autoIncrement"`
	OrderNumber string       `gorm:"size:64;uniqueIndex;not null"`
	Variant     OrderVariant `gorm:"type:varchar(16);not null"`
	OrderID     uint64       `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
}
