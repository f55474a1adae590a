package commands

import (
	"context"
	"sort"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/core/domain/services"
)

// TickResult aggregates the outcome of one auto-assignment pass.
type TickResult struct {
	Assigned int
	Failed   int
}

// AutoAssignCommandHandler runs one auto-assignment pass: snapshot the
// active rule, the unassigned orders and the assignable rider pool, rank
// candidates per order and commit the top candidate through the assignment
// coordinator.
//
// The snapshot is taken once per pass, so a rule update mid-pass never
// straddles it. Ranking works on the unlocked snapshot; the coordinator
// re-validates everything inside its per-order transaction, so a stale
// ranking costs at most a failed order, never a broken invariant.
// Per-order failures (no candidates, a lost race with a manual assignment)
// are counted and the pass moves on.
type AutoAssignCommandHandler struct {
	uowFactory UoWFactory
	assigner   OrderAssigner
}

// NewAutoAssignCommandHandler creates a handler for auto-assignment passes.
func NewAutoAssignCommandHandler(uowFactory UoWFactory, assigner OrderAssigner) AutoAssignCommandHandler {
	return AutoAssignCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
	}
}

// Handle runs one pass. Returns rule.ErrRuleInactive when the active rule
// is switched off; the scheduler treats that as a quiet skip. Orders are
// worked highest priority first, oldest first within a priority. After each
// success the pooled rider's load is bumped in memory so a filled rider
// stops being offered within the same pass.
func (h AutoAssignCommandHandler) Handle(
	ctx context.Context,
	command AutoAssignCommand,
) (TickResult, error) {
	if err := command.Validate(); err != nil {
		return TickResult{}, err
	}

	result := TickResult{}

	activeRule, orders, riders, err := h.snapshot(ctx, command, &result)
	if err != nil {
		return TickResult{}, err
	}
	if !activeRule.IsActive() {
		return TickResult{}, rule.ErrRuleInactive
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority() != orders[j].Priority() {
			return orders[i].Priority().Rank() > orders[j].Priority().Rank()
		}
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})

	engine := services.NewScoringEngine()
	for _, ord := range orders {
		ranked, err := engine.Rank(ord, riders, activeRule.Criteria())
		if err != nil || len(ranked) == 0 {
			result.Failed++
			continue
		}

		top := ranked[0]
		assignCmd, err := NewAssignOrderCommand(
			ord.ID(), top.Rider.ID(), false, order.AssignedByScheduler,
		)
		if err != nil {
			result.Failed++
			continue
		}

		if _, err = h.assigner.Handle(ctx, assignCmd); err != nil {
			result.Failed++
			continue
		}

		result.Assigned++
		// Keep the pooled snapshot honest for the rest of the pass. A full
		// rider drops out of subsequent rankings via the capacity filter.
		_ = top.Rider.AcceptOrder()
	}

	return result, nil
}

// snapshot fetches the rule, the order work list and the rider pool in one
// read-only transaction. Named orders that cannot be loaded count as failed
// instead of aborting the pass.
func (h AutoAssignCommandHandler) snapshot(
	ctx context.Context,
	command AutoAssignCommand,
	result *TickResult,
) (*rule.AutoAssignRule, []*order.Order, []*rider.Rider, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	activeRule, err := uow.RuleRepository().GetActive(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if !activeRule.IsActive() {
		return activeRule, nil, nil, nil
	}

	ordersRepo := uow.OrderRepository()

	var orders []*order.Order
	if len(command.OrderIDs()) > 0 {
		for _, id := range command.OrderIDs() {
			ord, err := ordersRepo.Get(ctx, id)
			if err != nil {
				result.Failed++
				continue
			}
			if ord.Status() != order.StatusUnassigned {
				result.Failed++
				continue
			}
			orders = append(orders, ord)
		}
	} else {
		orders, err = ordersRepo.GetAllUnassigned(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	riders, err := uow.RiderRepository().GetAllAssignable(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return activeRule, orders, riders, nil
}
