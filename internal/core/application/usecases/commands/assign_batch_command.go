package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAssignBatchCommandIsNotConstructed = errors.New(
		"AssignBatchCommand must be created via NewAssignBatchCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// AssignBatchCommand represents an operator assigning several orders to one
// rider in a single action. The batch is not atomic: each order succeeds or
// fails on its own and the result reports both sides precisely.
type AssignBatchCommand struct { //nolint:recvcheck //using for validation
	orderIDs   []kernel.UUID
	riderID    kernel.UUID
	assignedBy string

	guard guard.ConstructorGuard
}

// NewAssignBatchCommand creates a command to assign the orders to the rider.
func NewAssignBatchCommand(
	orderIDs []kernel.UUID,
	riderID kernel.UUID,
	assignedBy string,
) (AssignBatchCommand, error) {
	cmd := AssignBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setRiderID(riderID),
		cmd.setAssignedBy(assignedBy),
	); err != nil {
		return AssignBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignBatchCommandIsNotConstructed if validation fails.
func (c AssignBatchCommand) Validate() error {
	return c.guard.Validate(ErrAssignBatchCommandIsNotConstructed)
}

// OrderIDs returns the orders to assign, in request order.
func (c AssignBatchCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// RiderID returns the rider every order in the batch targets.
func (c AssignBatchCommand) RiderID() kernel.UUID {
	return c.riderID
}

// AssignedBy returns the acting operator id.
func (c AssignBatchCommand) AssignedBy() string {
	return c.assignedBy
}

func (c *AssignBatchCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *AssignBatchCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *AssignBatchCommand) setAssignedBy(assignedBy string) error {
	if assignedBy == "" {
		return ErrAssignedByIsRequired
	}

	c.assignedBy = assignedBy
	return nil
}
