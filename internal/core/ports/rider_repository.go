package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	// The rider must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate. The update is
	// guarded by the aggregate's version: if the stored row has moved on,
	// Update returns errs.ErrConcurrentModification and writes nothing.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such rider exists.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllAssignable retrieves the candidate pool for the auto-assign
	// pass: riders that are not offline and still below their capacity.
	GetAllAssignable(ctx context.Context) ([]*rider.Rider, error)
}
