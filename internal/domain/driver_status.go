package domain

import "time"

// DriverStatus is the field-reported delivery progression. It is a state
// machine separate from OrderStatus: office staff own the order status, the
// driver owns this one, and the two are surfaced together but never merged.
type DriverStatus string

const (
	DriverStatusAssigned      DriverStatus = "ASSIGNED"
	DriverStatusArrivedVendor DriverStatus = "ARRIVED_AT_VENDOR"
	DriverStatusEnRouteClient DriverStatus = "EN_ROUTE_TO_CLIENT"
	DriverStatusArrivedClient DriverStatus = "ARRIVED_TO_CLIENT"
	DriverStatusCompleted     DriverStatus = "COMPLETED"
)

var driverStatusOrder = []DriverStatus{
	DriverStatusAssigned,
	DriverStatusArrivedVendor,
	DriverStatusEnRouteClient,
	DriverStatusArrivedClient,
	DriverStatusCompleted,
}

// Index returns the status position in the progression, or -1 for an unknown
// value.
func (s DriverStatus) Index() int {
	for i, st := range driverStatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// CanAdvanceTo reports whether moving to next is legal: forward or same only,
// skipping intermediate states is allowed.
func (s DriverStatus) CanAdvanceTo(next DriverStatus) bool {
	ni := next.Index()
	return ni >= 0 && ni >= s.Index()
}

// DriverStatusEvent records one forward transition with its timestamp.
// Re-submitting the current status writes no new event.
type DriverStatusEvent struct {
	ID         uint64       `json:"id" gorm:"primaryKey;autoIncrement"`
	DispatchID uint64       `json:"dispatchId" gorm:"not null;index"`
	Status     DriverStatus `json:"status" gorm:"type:varchar(24);not null"`
	RecordedBy uint64       `json:"recordedBy"`
	RecordedAt time.Time    `json:"recordedAt" gorm:"autoCreateTime"`
}
