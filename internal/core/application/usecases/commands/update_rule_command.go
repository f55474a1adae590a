package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateRuleCommandIsNotConstructed = errors.New(
	"UpdateRuleCommand must be created via NewUpdateRuleCommand constructor",
)

// UpdateRuleCommand represents an operator replacing the active auto-assign
// rule's criteria and activation state. The criteria are validated as a
// whole when the command is constructed, so an out-of-range slider value is
// rejected with rule.ErrInvalidRuleConfig before the stored rule is touched.
type UpdateRuleCommand struct { //nolint:recvcheck //using for validation
	name     string
	isActive bool
	criteria rule.Criteria

	guard guard.ConstructorGuard
}

// NewUpdateRuleCommand creates a command carrying the full replacement
// criteria set.
func NewUpdateRuleCommand(
	name string,
	isActive bool,
	maxRadiusKm float64,
	maxOrdersPerRider int,
	preferSameZone bool,
	priorityWeight float64,
	distanceWeight float64,
	etaWeight float64,
) (UpdateRuleCommand, error) {
	if name == "" {
		return UpdateRuleCommand{}, rule.ErrNameIsRequired
	}

	criteria, err := rule.NewCriteria(
		maxRadiusKm, maxOrdersPerRider, preferSameZone,
		priorityWeight, distanceWeight, etaWeight,
	)
	if err != nil {
		return UpdateRuleCommand{}, err
	}

	return UpdateRuleCommand{
		name:     name,
		isActive: isActive,
		criteria: criteria,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateRuleCommandIsNotConstructed if validation fails.
func (c UpdateRuleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRuleCommandIsNotConstructed)
}

// Name returns the rule's display name.
func (c UpdateRuleCommand) Name() string {
	return c.name
}

// IsActive returns the desired activation state.
func (c UpdateRuleCommand) IsActive() bool {
	return c.isActive
}

// Criteria returns the validated replacement criteria.
func (c UpdateRuleCommand) Criteria() rule.Criteria {
	return c.criteria
}
