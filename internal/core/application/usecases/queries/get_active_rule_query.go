package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveRuleQueryIsNotConstructed = errors.New(
	"GetActiveRuleQuery must be created via NewGetActiveRuleQuery constructor",
)

// GetActiveRuleQuery retrieves the active auto-assign rule configuration.
type GetActiveRuleQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveRuleQuery creates a query for the active rule.
// This is a parameterless query; exactly one rule is active at a time.
func NewGetActiveRuleQuery() GetActiveRuleQuery {
	return GetActiveRuleQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveRuleQueryIsNotConstructed if validation fails.
func (q GetActiveRuleQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRuleQueryIsNotConstructed)
}

// GetActiveRuleQueryResponse is the rule configuration read model.
type GetActiveRuleQueryResponse struct {
	ID                kernel.UUID
	Name              string
	IsActive          bool
	MaxRadiusKm       float64
	MaxOrdersPerRider int
	PreferSameZone    bool
	PriorityWeight    float64
	DistanceWeight    float64
	EtaWeight         float64
	UpdatedAt         time.Time
}
