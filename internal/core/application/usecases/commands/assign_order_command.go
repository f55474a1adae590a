package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAssignOrderCommandIsNotConstructed = errors.New(
		"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
	)
	ErrAssignedByIsRequired = errors.New("assignedBy is required")
)

// AssignOrderCommand represents a request to assign one order to one rider.
// Both manual operator assignments and the auto-assign pass issue this
// command; the handler is the sole mutation path for assignment state.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, riderID, false, "operator-42")
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//	fact, err := handler.Handle(ctx, cmd)
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	riderID     kernel.UUID
	overrideSLA bool
	assignedBy  string

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign the order to the rider.
// OverrideSLA lets an operator push an order past its breached deadline;
// the auto-assign pass never sets it.
func NewAssignOrderCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	overrideSLA bool,
	assignedBy string,
) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		overrideSLA: overrideSLA,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
		cmd.setAssignedBy(assignedBy),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider to assign the order to.
func (c AssignOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// OverrideSLA reports whether a breached SLA deadline should be bypassed.
func (c AssignOrderCommand) OverrideSLA() bool {
	return c.overrideSLA
}

// AssignedBy returns the acting operator id, or order.AssignedByScheduler.
func (c AssignOrderCommand) AssignedBy() string {
	return c.assignedBy
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *AssignOrderCommand) setAssignedBy(assignedBy string) error {
	if assignedBy == "" {
		return ErrAssignedByIsRequired
	}

	c.assignedBy = assignedBy
	return nil
}
