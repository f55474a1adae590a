package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AssignmentRepository defines the persistence contract for assignment facts.
// The table is append-only: facts are added inside the assignment transaction
// and never updated.
type AssignmentRepository interface {
	// Add appends an assignment fact.
	Add(ctx context.Context, fact order.Assignment) error

	// GetByOrder retrieves the assignment history of an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.Assignment, error)
}
