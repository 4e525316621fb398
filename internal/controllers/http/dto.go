package http

import "time"

type AddressDTO struct {
	ID           uint64 `json:"id"`
	Street1      string `json:"street1"`
	Street2      string `json:"street2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	County       string `json:"county"`
	IsRestaurant bool   `json:"isRestaurant"`
	IsShared     bool   `json:"isShared"`
}

type CreateCateringOrderRequest struct {
	OrderNumber     string     `json:"orderNumber"`
	Pickup          AddressDTO `json:"pickup" binding:"required"`
	Delivery        AddressDTO `json:"delivery" binding:"required"`
	PickupDateTime  time.Time  `json:"pickupDateTime" binding:"required"`
	ArrivalDateTime time.Time  `json:"arrivalDateTime" binding:"required"`
	OrderTotal      int64      `json:"orderTotal"`
	Tip             int64      `json:"tip"`
	Headcount       int        `json:"headcount" binding:"required"`
	NeedHost        bool       `json:"needHost"`
	HoursNeeded     int        `json:"hoursNeeded"`
	NumberOfHosts   int        `json:"numberOfHosts"`
}

type CreateOnDemandOrderRequest struct {
	OrderNumber     string     `json:"orderNumber"`
	Pickup          AddressDTO `json:"pickup" binding:"required"`
	Delivery        AddressDTO `json:"delivery" binding:"required"`
	PickupDateTime  time.Time  `json:"pickupDateTime" binding:"required"`
	ArrivalDateTime time.Time  `json:"arrivalDateTime" binding:"required"`
	OrderTotal      int64      `json:"orderTotal"`
	Tip             int64      `json:"tip"`
	ItemDelivered   string     `json:"itemDelivered" binding:"required"`
	VehicleType     string     `json:"vehicleType" binding:"required"`
	Length          float64    `json:"length"`
	Width           float64    `json:"width"`
	Height          float64    `json:"height"`
	Weight          float64    `json:"weight"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignDriverRequest struct {
	DriverID uint64 `json:"driverId" binding:"required"`
}

type AdvanceDriverStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RelinkAttachmentsRequest struct {
	TempEntityID string `json:"tempEntityId" binding:"required"`
	Variant      string `json:"variant" binding:"required"`
	OrderID      uint64 `json:"orderId" binding:"required"`
}

// ReclaimAttachmentsRequest takes explicit file ids, an entity id, or both.
type ReclaimAttachmentsRequest struct {
	FileIDs  []uint64 `json:"fileIds"`
	EntityID string   `json:"entityId"`
}
