package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/pkg/errs"
)

// AssignOrderCommandHandler is the assignment coordinator: the only code
// path that moves an order to assigned and increments a rider's load.
//
// Every precondition is re-checked inside the transaction at commit time,
// not at call time, so a ranking produced from a stale snapshot cannot
// overfill a rider or double-assign an order. A version-guarded update that
// hits zero rows means the row moved under us; the lost race surfaces as
// the same typed error the loser would have gotten had it read the final
// state first:
//
//	fact, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrOrderAlreadyAssigned):
//	    // another caller committed this order first
//	case errors.Is(err, rider.ErrRiderFull):
//	    // the rider filled up concurrently
//	case errors.Is(err, order.ErrSLABreached):
//	    // retry with overrideSLA if the operator confirms
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignOrderCommandHandler creates the assignment coordinator.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewAssignOrderCommandHandler(uowFactory UoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle atomically assigns the order to the rider and records the
// assignment fact. On success the order is assigned, the rider's load is
// incremented and the returned fact describes the commit. On any failure
// the transaction rolls back with no partial mutation.
func (h AssignOrderCommandHandler) Handle(
	ctx context.Context,
	command AssignOrderCommand,
) (order.Assignment, error) {
	if err := command.Validate(); err != nil {
		return order.Assignment{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	ridersRepo := uow.RiderRepository()

	ord, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return order.Assignment{}, err
	}

	rdr, err := ridersRepo.Get(ctx, command.RiderID())
	if err != nil {
		return order.Assignment{}, err
	}

	assignedAt := time.Now().UTC()
	if err = ord.Assign(command.RiderID(), assignedAt, command.OverrideSLA()); err != nil {
		return order.Assignment{}, err
	}

	if err = rdr.AcceptOrder(); err != nil {
		return order.Assignment{}, err
	}

	fact, err := order.NewAssignment(
		command.OrderID(), command.RiderID(), assignedAt, command.OverrideSLA(), command.AssignedBy(),
	)
	if err != nil {
		return order.Assignment{}, err
	}

	if err = ordersRepo.Update(ctx, ord); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return order.Assignment{}, order.ErrOrderAlreadyAssigned
		}
		return order.Assignment{}, err
	}

	if err = ridersRepo.Update(ctx, rdr); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return order.Assignment{}, rider.ErrRiderFull
		}
		return order.Assignment{}, err
	}

	if err = uow.AssignmentRepository().Add(ctx, fact); err != nil {
		return order.Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Assignment{}, err
	}

	return fact, nil
}
