package queries

import (
	"context"
	"strings"

	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// SnapshotUoW is the read-side unit of work the recommendation handler needs:
// domain aggregates rather than raw rows, because ranking is domain logic.
type SnapshotUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
	RiderRepository() ports.RiderRepository
	RuleRepository() ports.RuleRepository
}

// SnapshotUoWFactory creates snapshot unit of work instances.
type SnapshotUoWFactory interface {
	Create() SnapshotUoW
}

// GetRecommendedRidersQueryHandler exposes the scoring engine's ranking as a
// read model. It is the same pure ranking the auto-assign pass uses, so what
// an operator sees is what the scheduler would do; the ranking can still go
// stale before a commit, which the coordinator resolves.
//
// The rule's activation state is ignored here on purpose: recommendations
// remain useful for manual assignment while the scheduler is switched off.
type GetRecommendedRidersQueryHandler struct {
	uowFactory SnapshotUoWFactory
	engine     services.ScoringEngine
}

// NewGetRecommendedRidersQueryHandler creates a handler for recommendation queries.
func NewGetRecommendedRidersQueryHandler(uowFactory SnapshotUoWFactory) GetRecommendedRidersQueryHandler {
	return GetRecommendedRidersQueryHandler{
		uowFactory: uowFactory,
		engine:     services.NewScoringEngine(),
	}
}

// Handle loads the order, the rule and the assignable rider pool, then
// ranks the pool for the order. An order with no surviving candidates
// yields an empty slice, not an error.
func (h GetRecommendedRidersQueryHandler) Handle(
	ctx context.Context,
	query GetRecommendedRidersQuery,
) ([]GetRecommendedRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	activeRule, err := uow.RuleRepository().GetActive(ctx)
	if err != nil {
		return nil, err
	}

	riders, err := uow.RiderRepository().GetAllAssignable(ctx)
	if err != nil {
		return nil, err
	}

	if query.Search() != "" {
		riders = filterByName(riders, query.Search())
	}

	ranked, err := h.engine.Rank(ord, riders, activeRule.Criteria())
	if err != nil {
		return nil, err
	}

	responses := make([]GetRecommendedRidersQueryResponse, 0, len(ranked))
	for _, candidate := range ranked {
		responses = append(responses, GetRecommendedRidersQueryResponse{
			RiderID:                candidate.Rider.ID(),
			Name:                   candidate.Rider.Name(),
			Zone:                   candidate.Rider.Zone(),
			Score:                  candidate.Score,
			PickupDistanceKm:       candidate.PickupDistanceKm,
			EstimatedPickupMinutes: candidate.EstimatedPickupMinutes,
			ActiveOrdersCount:      candidate.Rider.ActiveOrdersCount(),
			MaxCapacity:            candidate.Rider.MaxCapacity(),
		})
	}

	return responses, nil
}

func filterByName(riders []*rider.Rider, search string) []*rider.Rider {
	needle := strings.ToLower(search)
	filtered := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if strings.Contains(strings.ToLower(r.Name()), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
