package domain

import "time"

// Dispatch binds an order to the driver assigned to it and the staff member
// who made the assignment. Storage keeps two nullable FK columns; exactly one
// is set, and code only ever sees that pair through OrderRef.
type Dispatch struct {
	ID                uint64       `json:"id" gorm:"primaryKey;autoIncrement"`
	CateringRequestID *uint64      `json:"cateringRequestId,omitempty" gorm:"index"`
	OnDemandID        *uint64      `json:"onDemandId,omitempty" gorm:"index"`
	DriverID          uint64       `json:"driverId" gorm:"not null;index"`
	DispatchingUserID uint64       `json:"dispatchingUserId" gorm:"not null"`
	DriverStatus      DriverStatus `json:"driverStatus" gorm:"type:varchar(24);default:'ASSIGNED'"`
	Superseded        bool         `json:"superseded" gorm:"default:false;index"`
	CreatedAt         time.Time    `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (d *Dispatch) OrderRef() OrderRef {
	if d.CateringRequestID != nil {
		return OrderRef{Variant: VariantCatering, ID: *d.CateringRequestID}
	}
	return OrderRef{Variant: VariantOnDemand, ID: *d.OnDemandID}
}

// SetOrderRef populates the mutually-exclusive FK pair from a ref.
func (d *Dispatch) SetOrderRef(ref OrderRef) {
	switch ref.Variant {
	case VariantCatering:
		d.CateringRequestID = &ref.ID
		d.OnDemandID = nil
	case VariantOnDemand:
		d.OnDemandID = &ref.ID
		d.CateringRequestID = nil
	}
}
