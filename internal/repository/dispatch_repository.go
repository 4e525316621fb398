package repository

import (
	"context"

	"catering-service/internal/domain"
)

type DispatchRepository interface {
	// Assign runs the whole assignment transaction: supersede the prior
	// active dispatch (kept for history), insert the new dispatch with its
	// initial ASSIGNED status event, and flip the order from ACTIVE to ASSIGNED.
	// Returns domain.ErrOrderNotAssignable when the order reached a terminal
	// status concurrently.
	Assign(ctx context.Context, dispatch *domain.Dispatch) error

	// Current returns the newest non-superseded dispatch for the order, or
	// nil, nil when none exists.
	Current(ctx context.Context, ref domain.OrderRef) (*domain.Dispatch, error)
	History(ctx context.Context, ref domain.OrderRef) ([]domain.Dispatch, error)

	// AdvanceDriverStatus updates the dispatch's driver status conditioned on
	// the current value and appends a timestamped event in one transaction.
	// Returns false when the dispatch was no longer in `from`.
	AdvanceDriverStatus(ctx context.Context, dispatchID uint64, from, to domain.DriverStatus, recordedBy uint64) (bool, error)
	StatusEvents(ctx context.Context, dispatchID uint64) ([]domain.DriverStatusEvent, error)
}
