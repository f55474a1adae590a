package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentsByOrderQueryIsNotConstructed = errors.New(
	"GetAssignmentsByOrderQuery must be created via NewGetAssignmentsByOrderQuery constructor",
)

// GetAssignmentsByOrderQuery retrieves the assignment audit trail of one order.
type GetAssignmentsByOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignmentsByOrderQuery creates an audit trail query for the order.
func NewGetAssignmentsByOrderQuery(orderID kernel.UUID) (GetAssignmentsByOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAssignmentsByOrderQuery{}, err
	}

	return GetAssignmentsByOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAssignmentsByOrderQueryIsNotConstructed if validation fails.
func (q GetAssignmentsByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentsByOrderQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetAssignmentsByOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetAssignmentsByOrderQueryResponse is one assignment fact in the trail.
type GetAssignmentsByOrderQueryResponse struct {
	OrderID     kernel.UUID
	RiderID     kernel.UUID
	AssignedAt  time.Time
	OverrideSLA bool
	AssignedBy  string
}
