package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRecommendedRidersQueryIsNotConstructed = errors.New(
	"GetRecommendedRidersQuery must be created via NewGetRecommendedRidersQuery constructor",
)

// GetRecommendedRidersQuery asks for the ranked candidate riders of one
// order, as the scoring engine would order them under the current rule.
// The optional search narrows candidates by name before ranking.
type GetRecommendedRidersQuery struct {
	orderID kernel.UUID
	search  string

	guard guard.ConstructorGuard
}

// NewGetRecommendedRidersQuery creates a recommendation query for the order.
func NewGetRecommendedRidersQuery(orderID kernel.UUID, search string) (GetRecommendedRidersQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetRecommendedRidersQuery{}, err
	}

	return GetRecommendedRidersQuery{
		orderID: orderID,
		search:  search,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRecommendedRidersQueryIsNotConstructed if validation fails.
func (q GetRecommendedRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecommendedRidersQueryIsNotConstructed)
}

// OrderID returns the order to recommend riders for.
func (q GetRecommendedRidersQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Search returns the rider name filter; empty matches everyone.
func (q GetRecommendedRidersQuery) Search() string {
	return q.search
}

// GetRecommendedRidersQueryResponse is one ranked candidate. The slice
// returned by the handler is ordered best-first, exactly as the auto-assign
// pass would try them.
type GetRecommendedRidersQueryResponse struct {
	RiderID                kernel.UUID
	Name                   string
	Zone                   string
	Score                  float64
	PickupDistanceKm       float64
	EstimatedPickupMinutes float64
	ActiveOrdersCount      int
	MaxCapacity            int
}
