package domain

import "time"

type AccountType string

const (
	AccountClient   AccountType = "client"
	AccountVendor   AccountType = "vendor"
	AccountDriver   AccountType = "driver"
	AccountAdmin    AccountType = "admin"
	AccountHelpdesk AccountType = "helpdesk"
)

// IsStaff reports whether the account may dispatch orders and act on a
// driver's behalf.
func (a AccountType) IsStaff() bool {
	return a == AccountAdmin || a == AccountHelpdesk
}

// User is the read-only profile registry the core consults for authorization
// checks. Account management itself lives with the identity provider.
type User struct {
	ID          uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string      `json:"name"`
	Email       string      `json:"email" gorm:"unique"`
	AccountType AccountType `json:"accountType" gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}
