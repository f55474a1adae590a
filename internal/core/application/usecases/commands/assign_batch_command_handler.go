package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderAssigner is the slice of the assignment coordinator that the batch
// and auto-assign handlers depend on. Funneling every mutation through it
// keeps the capacity invariant in one place.
type OrderAssigner interface {
	Handle(ctx context.Context, command AssignOrderCommand) (order.Assignment, error)
}

// FailedOrder is one order of a batch that could not be assigned, with the
// typed error explaining why.
type FailedOrder struct {
	OrderID kernel.UUID
	Reason  error
}

// BatchResult reports the outcome of a batch assignment. Assigned plus
// len(Failed) always equals the number of orders in the batch.
type BatchResult struct {
	Assigned int
	Failed   []FailedOrder
}

// AssignBatchCommandHandler assigns a batch of orders to one rider by
// calling the assignment coordinator sequentially, one transaction per
// order. No capacity is pre-reserved: each call re-checks live state, so
// once the rider fills up the remaining orders fail with rider.ErrRiderFull
// and are reported rather than silently dropped.
type AssignBatchCommandHandler struct {
	assigner OrderAssigner
}

// NewAssignBatchCommandHandler creates a handler for batch assignment operations.
func NewAssignBatchCommandHandler(assigner OrderAssigner) AssignBatchCommandHandler {
	return AssignBatchCommandHandler{
		assigner: assigner,
	}
}

// Handle processes the batch sequentially and reports partial success.
// Per-order failures never abort the batch; only an invalid command errors.
func (h AssignBatchCommandHandler) Handle(
	ctx context.Context,
	command AssignBatchCommand,
) (BatchResult, error) {
	if err := command.Validate(); err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{}
	for _, orderID := range command.OrderIDs() {
		assignCmd, err := NewAssignOrderCommand(
			orderID, command.RiderID(), false, command.AssignedBy(),
		)
		if err != nil {
			result.Failed = append(result.Failed, FailedOrder{OrderID: orderID, Reason: err})
			continue
		}

		if _, err = h.assigner.Handle(ctx, assignCmd); err != nil {
			result.Failed = append(result.Failed, FailedOrder{OrderID: orderID, Reason: err})
			continue
		}

		result.Assigned++
	}

	return result, nil
}
