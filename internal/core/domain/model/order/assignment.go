package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// AssignedByScheduler is the actor recorded on assignments committed by the
// background auto-assign pass, as opposed to an operator id.
const AssignedByScheduler = "auto-scheduler"

// ErrAssignedByIsRequired is returned when creating an assignment without an actor.
var ErrAssignedByIsRequired = errs.NewValueIsRequiredError("assignedBy")

// Assignment is the append-only fact recorded for every committed
// order-to-rider assignment. It exists for audit and history consumers and
// is never updated after creation.
type Assignment struct {
	orderID     kernel.UUID
	riderID     kernel.UUID
	assignedAt  time.Time
	overrideSLA bool
	assignedBy  string
}

// NewAssignment creates an assignment fact for a committed assignment.
func NewAssignment(
	orderID kernel.UUID,
	riderID kernel.UUID,
	assignedAt time.Time,
	overrideSLA bool,
	assignedBy string,
) (Assignment, error) {
	if err := errors.Join(
		orderID.Validate(),
		riderID.Validate(),
	); err != nil {
		return Assignment{}, err
	}
	if assignedBy == "" {
		return Assignment{}, ErrAssignedByIsRequired
	}

	return Assignment{
		orderID:     orderID,
		riderID:     riderID,
		assignedAt:  assignedAt.UTC(),
		overrideSLA: overrideSLA,
		assignedBy:  assignedBy,
	}, nil
}

// OrderID returns the assigned order's identifier.
func (a Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// RiderID returns the rider the order was assigned to.
func (a Assignment) RiderID() kernel.UUID {
	return a.riderID
}

// AssignedAt returns the commit time of the assignment.
func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// OverrideSLA reports whether the assignment bypassed a breached SLA deadline.
func (a Assignment) OverrideSLA() bool {
	return a.overrideSLA
}

// AssignedBy returns the operator id, or AssignedByScheduler for automatic
// assignments.
func (a Assignment) AssignedBy() string {
	return a.assignedBy
}
