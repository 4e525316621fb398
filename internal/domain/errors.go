package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateOrderNumber: the business key already exists in the shared
	// numbering namespace. Caller regenerates or surfaces to the user.
	ErrDuplicateOrderNumber = errors.New("order number already exists")

	// ErrInvalidStateTransition: illegal order-status move. Caller error,
	// never retried.
	ErrInvalidStateTransition = errors.New("invalid order status transition")

	// ErrInvalidStatusTransition: backward driver-status move.
	ErrInvalidStatusTransition = errors.New("invalid driver status transition")

	// ErrDriverNotEligible: assignment target is not a driver account.
	ErrDriverNotEligible = errors.New("assigned user is not a driver")

	// ErrOrderNotAssignable: the order is CANCELLED or COMPLETED.
	ErrOrderNotAssignable = errors.New("order can no longer be assigned")

	// ErrUnauthorized: identity or ownership mismatch.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is a field-attributable input failure, raised before any
// storage is touched so the calling layer can render it next to the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
