package domain

import "time"

// Notification payloads published after a transaction commits. Delivery is
// fire-and-forget; a publish failure never fails the core operation.

type OrderCreatedEvent struct {
	OrderID     uint64       `json:"orderId"`
	Variant     OrderVariant `json:"variant"`
	OrderNumber string       `json:"orderNumber"`
	UserID      uint64       `json:"userId"`
	OrderTotal  int64        `json:"orderTotal"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type DispatchAssignedEvent struct {
	DispatchID        uint64       `json:"dispatchId"`
	OrderID           uint64       `json:"orderId"`
	Variant           OrderVariant `json:"variant"`
	DriverID          uint64       `json:"driverId"`
	DispatchingUserID uint64       `json:"dispatchingUserId"`
	CreatedAt         time.Time    `json:"createdAt"`
}

type DriverStatusUpdatedEvent struct {
	DispatchID uint64       `json:"dispatchId"`
	OrderID    uint64       `json:"orderId"`
	Variant    OrderVariant `json:"variant"`
	Status     DriverStatus `json:"status"`
	RecordedAt time.Time    `json:"recordedAt"`
}
