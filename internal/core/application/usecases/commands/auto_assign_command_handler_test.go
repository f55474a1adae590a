package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func autoAssignUoW(
	t *testing.T,
	ctx context.Context,
	activeRule *rule.AutoAssignRule,
	orders []*order.Order,
	riders []*rider.Rider,
) (*MockUoW, *MockUoWFactory) {
	t.Helper()

	orderRepo := new(MockOrderRepository)
	riderRepo := new(MockRiderRepository)
	ruleRepo := new(MockRuleRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RuleRepository").Return(ruleRepo).Once()
	ruleRepo.On("GetActive", ctx).Return(activeRule, nil).Once()
	if activeRule.IsActive() {
		uow.On("OrderRepository").Return(orderRepo).Once()
		orderRepo.On("GetAllUnassigned", ctx).Return(orders, nil).Once()
		uow.On("RiderRepository").Return(riderRepo).Once()
		riderRepo.On("GetAllAssignable", ctx).Return(riders, nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestAutoAssignCommandHandler_Handle_InactiveRule(t *testing.T) {
	ctx := t.Context()
	inactive := testRule(t, false)

	_, factory := autoAssignUoW(t, ctx, inactive, nil, nil)
	assigner := new(MockOrderAssigner)

	cmd, err := commands.NewAutoAssignCommand(nil)
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, rule.ErrRuleInactive)
	assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestAutoAssignCommandHandler_Handle_AssignsTopCandidates(t *testing.T) {
	ctx := t.Context()
	active := testRule(t, true)

	orders := []*order.Order{
		testOrder(t, order.PriorityHigh, 30*time.Minute),
		testOrder(t, order.PriorityLow, 30*time.Minute),
	}
	riders := []*rider.Rider{testRider(t, 3), testRider(t, 3)}

	_, factory := autoAssignUoW(t, ctx, active, orders, riders)

	assigner := new(MockOrderAssigner)
	assigner.On("Handle", ctx, mock.MatchedBy(func(c commands.AssignOrderCommand) bool {
		return c.AssignedBy() == order.AssignedByScheduler && !c.OverrideSLA()
	})).Return(order.Assignment{}, nil).Times(2)

	cmd, err := commands.NewAutoAssignCommand(nil)
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 0, result.Failed)
	assigner.AssertExpectations(t)
}

func TestAutoAssignCommandHandler_Handle_HighPriorityFirst(t *testing.T) {
	ctx := t.Context()
	active := testRule(t, true)

	lowOrder := testOrder(t, order.PriorityLow, 30*time.Minute)
	highOrder := testOrder(t, order.PriorityHigh, 30*time.Minute)
	// Fetched out of order on purpose; the pass must reorder.
	orders := []*order.Order{lowOrder, highOrder}
	riders := []*rider.Rider{testRider(t, 1)}

	_, factory := autoAssignUoW(t, ctx, active, orders, riders)

	var assignedOrder []kernel.UUID
	assigner := new(MockOrderAssigner)
	assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignOrderCommand")).
		Run(func(args mock.Arguments) {
			cmd := args.Get(1).(commands.AssignOrderCommand)
			assignedOrder = append(assignedOrder, cmd.OrderID())
		}).
		Return(order.Assignment{}, nil).
		Once()

	cmd, err := commands.NewAutoAssignCommand(nil)
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// The single rider slot goes to the high-priority order; the low one
	// finds no candidate afterwards.
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, assignedOrder, 1)
	assert.Equal(t, highOrder.ID(), assignedOrder[0])
}

func TestAutoAssignCommandHandler_Handle_FilledRiderLeavesPool(t *testing.T) {
	ctx := t.Context()
	active := testRule(t, true)

	orders := []*order.Order{
		testOrder(t, order.PriorityHigh, 30*time.Minute),
		testOrder(t, order.PriorityHigh, 30*time.Minute),
		testOrder(t, order.PriorityHigh, 30*time.Minute),
	}
	// One rider with two slots: two orders land on it, the third fails.
	riders := []*rider.Rider{testRider(t, 2)}

	_, factory := autoAssignUoW(t, ctx, active, orders, riders)

	assigner := new(MockOrderAssigner)
	assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignOrderCommand")).
		Return(order.Assignment{}, nil).
		Times(2)

	cmd, err := commands.NewAutoAssignCommand(nil)
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 1, result.Failed)
	assigner.AssertExpectations(t)
}

func TestAutoAssignCommandHandler_Handle_LostRaceDoesNotAbort(t *testing.T) {
	ctx := t.Context()
	active := testRule(t, true)

	orders := []*order.Order{
		testOrder(t, order.PriorityHigh, 30*time.Minute),
		testOrder(t, order.PriorityHigh, 30*time.Minute),
	}
	riders := []*rider.Rider{testRider(t, 3), testRider(t, 3)}

	_, factory := autoAssignUoW(t, ctx, active, orders, riders)

	assigner := new(MockOrderAssigner)
	mock.InOrder(
		assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignOrderCommand")).
			Return(order.Assignment{}, order.ErrOrderAlreadyAssigned).Once(),
		assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignOrderCommand")).
			Return(order.Assignment{}, nil).Once(),
	)

	cmd, err := commands.NewAutoAssignCommand(nil)
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, 1, result.Failed)
}

func TestAutoAssignCommandHandler_Handle_SubsetByOrderIDs(t *testing.T) {
	ctx := t.Context()
	active := testRule(t, true)

	target := testOrder(t, order.PriorityMedium, 30*time.Minute)
	missingID := kernel.NewUUID()
	riders := []*rider.Rider{testRider(t, 3)}

	orderRepo := new(MockOrderRepository)
	riderRepo := new(MockRiderRepository)
	ruleRepo := new(MockRuleRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RuleRepository").Return(ruleRepo).Once()
	ruleRepo.On("GetActive", ctx).Return(active, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
	orderRepo.On("Get", ctx, missingID).
		Return(nil, errs.NewObjectNotFoundError("orderID", missingID)).
		Once()
	uow.On("RiderRepository").Return(riderRepo).Once()
	riderRepo.On("GetAllAssignable", ctx).Return(riders, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	assigner := new(MockOrderAssigner)
	assigner.On("Handle", ctx, mock.MatchedBy(func(c commands.AssignOrderCommand) bool {
		return c.OrderID() == target.ID()
	})).Return(order.Assignment{}, nil).Once()

	cmd, err := commands.NewAutoAssignCommand([]kernel.UUID{target.ID(), missingID})
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, 1, result.Failed)
	orderRepo.AssertNotCalled(t, "GetAllUnassigned", ctx)
}

func TestAutoAssignCommandHandler_Handle_FetchErrorFailsPass(t *testing.T) {
	ctx := t.Context()
	active := testRule(t, true)

	orderRepo := new(MockOrderRepository)
	ruleRepo := new(MockRuleRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RuleRepository").Return(ruleRepo).Once(),
		ruleRepo.On("GetActive", ctx).Return(active, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllUnassigned", ctx).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	assigner := new(MockOrderAssigner)

	cmd, err := commands.NewAutoAssignCommand(nil)
	require.NoError(t, err)

	handler := commands.NewAutoAssignCommandHandler(factory, assigner)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
	assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}
