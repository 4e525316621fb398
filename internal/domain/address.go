package domain

import "time"

// Address is a normalized postal location. Rows referenced by an order's
// pickup or delivery slot are treated as immutable for audit purposes;
// corrections create a new row.
type Address struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Street1      string    `json:"street1" gorm:"not null"`
	Street2      string    `json:"street2,omitempty"`
	City         string    `json:"city" gorm:"not null"`
	State        string    `json:"state" gorm:"size:32;not null"`
	Zip          string    `json:"zip" gorm:"size:16;not null"`
	County       string    `json:"county,omitempty"`
	IsRestaurant bool      `json:"isRestaurant"`
	IsShared     bool      `json:"isShared"`
	CreatedBy    uint64    `json:"createdBy" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
