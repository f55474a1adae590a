package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AssignmentRepositoryIntegrationTestSuite provides integration tests for
// AssignmentRepository using PostgreSQL containers.
type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.AssignmentDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE assignments").Error)
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddAndGetByOrder_RoundTrips() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	assignedAt := time.Now().UTC().Truncate(time.Millisecond)

	fact, err := order.NewAssignment(orderID, riderID, assignedAt, true, "operator-7")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, fact))

	facts, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(facts, 1)
	suite.Equal(orderID, facts[0].OrderID())
	suite.Equal(riderID, facts[0].RiderID())
	suite.WithinDuration(assignedAt, facts[0].AssignedAt(), time.Second)
	suite.True(facts[0].OverrideSLA())
	suite.Equal("operator-7", facts[0].AssignedBy())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetByOrder_ReturnsHistoryOldestFirst() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	// A cancelled-and-reassigned order accumulates several facts
	for i, actor := range []string{order.AssignedByScheduler, "operator-7", "operator-2"} {
		fact, err := order.NewAssignment(
			orderID, kernel.NewUUID(), base.Add(time.Duration(i)*time.Minute), false, actor)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, fact))
	}

	// A fact of another order must not leak into the history
	other, err := order.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), base, false, "operator-7")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	facts, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(facts, 3)
	suite.Equal(order.AssignedByScheduler, facts[0].AssignedBy())
	suite.Equal("operator-7", facts[1].AssignedBy())
	suite.Equal("operator-2", facts[2].AssignedBy())
	suite.True(facts[0].AssignedAt().Before(facts[2].AssignedAt()))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetByOrder_NoFacts_ReturnsEmptySlice() {
	ctx := context.Background()

	facts, err := suite.repository.GetByOrder(ctx, kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(facts)
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
