package rulerepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/rulerepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RuleRepositoryIntegrationTestSuite provides integration tests for
// RuleRepository using PostgreSQL containers.
type RuleRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *rulerepo.GormRuleRepository
}

func (suite *RuleRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&rulerepo.RuleDTO{}))
}

func (suite *RuleRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE auto_assign_rules").Error)
	suite.repository = rulerepo.NewGormRuleRepository(suite.db)
}

func (suite *RuleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RuleRepositoryIntegrationTestSuite) TestGetActive_NoRuleConfigured_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetActive(ctx)

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RuleRepositoryIntegrationTestSuite) TestSaveAndGetActive_RoundTrips() {
	ctx := context.Background()

	testRule := suite.createTestRule("default", 5.0, 3, true)
	suite.Require().NoError(suite.repository.Save(ctx, testRule))

	retrieved, err := suite.repository.GetActive(ctx)
	suite.Require().NoError(err)

	suite.Equal(testRule.ID(), retrieved.ID())
	suite.Equal("default", retrieved.Name())
	suite.True(retrieved.IsActive())
	suite.InDelta(5.0, retrieved.Criteria().MaxRadiusKm(), 1e-9)
	suite.Equal(3, retrieved.Criteria().MaxOrdersPerRider())
	suite.True(retrieved.Criteria().PreferSameZone())
	suite.InDelta(2.0, retrieved.Criteria().PriorityWeight(), 1e-9)
	suite.InDelta(5.0, retrieved.Criteria().DistanceWeight(), 1e-9)
	suite.InDelta(3.0, retrieved.Criteria().EtaWeight(), 1e-9)
}

func (suite *RuleRepositoryIntegrationTestSuite) TestSave_SameID_UpsertsInPlace() {
	ctx := context.Background()

	testRule := suite.createTestRule("default", 5.0, 3, true)
	suite.Require().NoError(suite.repository.Save(ctx, testRule))

	// Reconfigure and save again under the same identifier
	criteria, err := rule.NewCriteria(8.0, 2, false, 1.0, 1.0, 1.0)
	suite.Require().NoError(err)
	suite.Require().NoError(testRule.UpdateCriteria(criteria))
	testRule.Deactivate()
	suite.Require().NoError(suite.repository.Save(ctx, testRule))

	var count int64
	suite.Require().NoError(suite.db.Model(&rulerepo.RuleDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	retrieved, err := suite.repository.GetActive(ctx)
	suite.Require().NoError(err)
	suite.False(retrieved.IsActive())
	suite.InDelta(8.0, retrieved.Criteria().MaxRadiusKm(), 1e-9)
	suite.Equal(2, retrieved.Criteria().MaxOrdersPerRider())
}

func (suite *RuleRepositoryIntegrationTestSuite) TestGetActive_MultipleRows_ReturnsMostRecentlyUpdated() {
	ctx := context.Background()

	stale := suite.createTestRule("stale", 5.0, 3, true)
	suite.Require().NoError(suite.repository.Save(ctx, stale))

	// Backdate the first row so the second clearly wins
	suite.Require().NoError(suite.db.Model(&rulerepo.RuleDTO{}).
		Where("id = ?", stale.ID().Bytes()).
		Update("updated_at", time.Now().UTC().Add(-time.Hour)).Error)

	current := suite.createTestRule("current", 7.0, 4, true)
	suite.Require().NoError(suite.repository.Save(ctx, current))

	retrieved, err := suite.repository.GetActive(ctx)
	suite.Require().NoError(err)
	suite.Equal(current.ID(), retrieved.ID())
	suite.Equal("current", retrieved.Name())
}

// createTestRule creates an auto-assign rule with the given shape.
func (suite *RuleRepositoryIntegrationTestSuite) createTestRule(
	name string, radiusKm float64, maxOrders int, active bool,
) *rule.AutoAssignRule {
	criteria, err := rule.NewCriteria(radiusKm, maxOrders, true, 2.0, 5.0, 3.0)
	suite.Require().NoError(err)

	testRule, err := rule.NewAutoAssignRule(kernel.NewUUID(), name, criteria)
	suite.Require().NoError(err)
	testRule.SetActive(active)
	return testRule
}

func TestRuleRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RuleRepositoryIntegrationTestSuite))
}
