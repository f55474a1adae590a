package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand triggers one auto-assignment pass. With no order ids it
// covers every unassigned order (the scheduler's tick); with ids it is a
// manually triggered pass restricted to that subset.
type AutoAssignCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoAssignCommand creates a command for one auto-assignment pass over
// the given orders, or over all unassigned orders when none are given.
func NewAutoAssignCommand(orderIDs []kernel.UUID) (AutoAssignCommand, error) {
	cmd := AutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return AutoAssignCommand{}, err
		}
	}
	cmd.orderIDs = orderIDs

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoAssignCommandIsNotConstructed if validation fails.
func (c AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}

// OrderIDs returns the subset of orders to cover; empty means all unassigned.
func (c AutoAssignCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}
