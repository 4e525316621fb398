package repository

import (
	"context"

	"catering-service/internal/domain"
)

// UserRepository is a read-only view of the profile registry; the core only
// consults it for authorization checks.
type UserRepository interface {
	// FindByID returns nil, nil when the user does not exist.
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
}
