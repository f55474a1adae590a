package cmd

import (
	"log/slog"
	"time"

	adapterhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires the application's use cases to the postgres
// adapters and the metrics sink.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	sink       *metrics.PromSink
	logger     *slog.Logger
}

// NewCompositionRoot builds the wiring for the configured application.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	sink, err := metrics.NewPromSink(prometheus.DefaultRegisterer)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		sink:       sink,
		logger:     logger,
	}, nil
}

// Sink returns the shared metrics sink.
func (c *CompositionRoot) Sink() *metrics.PromSink {
	return c.sink
}

// UnitOfWorkFactory returns the shared transaction factory; main uses it to
// seed the default rule on first start.
func (c *CompositionRoot) UnitOfWorkFactory() *postgres.GormUnitOfWorkFactory {
	return &c.uowFactory
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignBatchCommandHandler() commands.AssignBatchCommandHandler {
	return commands.NewAssignBatchCommandHandler(c.CreateAssignOrderCommandHandler())
}

func (c *CompositionRoot) CreateAutoAssignCommandHandler() commands.AutoAssignCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignCommandHandler(f, c.CreateAssignOrderCommandHandler())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateRuleCommandHandler() commands.UpdateRuleCommandHandler {
	var f commands.RuleUoWFactory = FuncRuleUoWFactory(func() commands.RuleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRuleCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRidersQueryHandler() queries.GetRidersQueryHandler {
	return queries.NewGetRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentsByOrderQueryHandler() queries.GetAssignmentsByOrderQueryHandler {
	return queries.NewGetAssignmentsByOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveRuleQueryHandler() queries.GetActiveRuleQueryHandler {
	return queries.NewGetActiveRuleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRecommendedRidersQueryHandler() queries.GetRecommendedRidersQueryHandler {
	var f queries.SnapshotUoWFactory = FuncSnapshotUoWFactory(func() queries.SnapshotUoW {
		return c.uowFactory.Create()
	})
	return queries.NewGetRecommendedRidersQueryHandler(f)
}

// CreateHTTPServer assembles the API server over the full handler set.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateAssignOrderCommandHandler(),
		c.CreateAssignBatchCommandHandler(),
		c.CreateAutoAssignCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateRuleCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetRidersQueryHandler(),
		c.CreateGetAssignmentsByOrderQueryHandler(),
		c.CreateGetActiveRuleQueryHandler(),
		c.CreateGetRecommendedRidersQueryHandler(),
		c.sink,
	)
}

// CreateJobManager assembles the background scheduler jobs.
func (c *CompositionRoot) CreateJobManager(interval, tickTimeout time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAutoAssignCommandHandler(), c.sink, interval, tickTimeout, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRuleUoWFactory func() commands.RuleUoW

func (f FuncRuleUoWFactory) Create() commands.RuleUoW {
	return f()
}

type FuncSnapshotUoWFactory func() queries.SnapshotUoW

func (f FuncSnapshotUoWFactory) Create() queries.SnapshotUoW {
	return f()
}
