package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testGeoPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()

	p, err := kernel.NewGeoPoint(52.5200, 13.4050)
	require.NoError(t, err)
	return p
}

// testOrder builds an unassigned order in zone "A" with a deadline the
// given duration from now.
func testOrder(t *testing.T, priority order.Priority, slaIn time.Duration) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		priority,
		testGeoPoint(t), "Alexanderplatz 1",
		testGeoPoint(t), "Torstrasse 10",
		"A",
		2.5, 14.0,
		time.Now().UTC().Add(slaIn),
	)
	require.NoError(t, err)
	return o
}

func testRider(t *testing.T, capacity int) *rider.Rider {
	t.Helper()

	r, err := rider.NewRider(kernel.NewUUID(), "Asel", "A", testGeoPoint(t), capacity, 5.0)
	require.NoError(t, err)
	return r
}

func testRule(t *testing.T, active bool) *rule.AutoAssignRule {
	t.Helper()

	criteria, err := rule.NewCriteria(5.0, 3, false, 2.0, 5.0, 3.0)
	require.NoError(t, err)

	r, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", criteria)
	require.NoError(t, err)
	r.SetActive(active)
	return r
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllAssignable(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockRuleRepository struct{ mock.Mock }

func (m *MockRuleRepository) GetActive(ctx context.Context) (*rule.AutoAssignRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rule.AutoAssignRule), args.Error(1)
}

func (m *MockRuleRepository) Save(ctx context.Context, r *rule.AutoAssignRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, fact order.Assignment) error {
	args := m.Called(ctx, fact)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Assignment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) RuleRepository() ports.RuleRepository {
	args := m.Called()
	return args.Get(0).(ports.RuleRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRuleUoWFactory struct{ mock.Mock }

func (m *MockRuleUoWFactory) Create() commands.RuleUoW {
	args := m.Called()
	return args.Get(0).(commands.RuleUoW)
}

type MockOrderAssigner struct{ mock.Mock }

func (m *MockOrderAssigner) Handle(
	ctx context.Context,
	cmd commands.AssignOrderCommand,
) (order.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.Assignment), args.Error(1)
}
