package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/metrics"

	"github.com/robfig/cron/v3"
)

// AutoAssigner executes one auto-assign pass. Implemented by
// commands.AutoAssignCommandHandler.
type AutoAssigner interface {
	Handle(ctx context.Context, command commands.AutoAssignCommand) (commands.TickResult, error)
}

// AutoAssignJob runs the scheduled auto-assign pass. Each tick snapshots
// the rule, the unassigned orders and the assignable riders, then assigns
// orders best-candidate-first through the same coordinator the HTTP API
// uses.
type AutoAssignJob struct {
	handler     AutoAssigner
	sink        *metrics.PromSink
	cron        *cron.Cron
	logger      *slog.Logger
	interval    time.Duration
	tickTimeout time.Duration

	// tickMu guards against overlapping passes when a tick outlives the
	// interval.
	tickMu sync.Mutex
}

// NewAutoAssignJob creates the scheduler job. The interval controls how often
// a pass starts; tickTimeout bounds how long a single pass may run.
func NewAutoAssignJob(
	handler AutoAssigner,
	sink *metrics.PromSink,
	interval time.Duration,
	tickTimeout time.Duration,
	logger *slog.Logger,
) *AutoAssignJob {
	return &AutoAssignJob{
		handler:     handler,
		sink:        sink,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "auto_assign_job"),
		interval:    interval,
		tickTimeout: tickTimeout,
	}
}

// Start begins the auto-assign job at the configured interval.
func (j *AutoAssignJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-assign job started", "interval", j.interval.String())
	return nil
}

// Stop stops the auto-assign job.
func (j *AutoAssignJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-assign job stopped")
}

func (j *AutoAssignJob) tick() {
	// Never run two passes at once; a skipped tick is cheaper than a pile-up
	// of competing transactions.
	if !j.tickMu.TryLock() {
		j.logger.Warn("Auto-assign tick skipped, previous pass still running")
		return
	}
	defer j.tickMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.tickTimeout)
	defer cancel()

	command, err := commands.NewAutoAssignCommand(nil)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-assign tick could not build command", "error", err)
		j.sink.RecordSchedulerError()
		return
	}

	result, err := j.handler.Handle(ctx, command)
	if err != nil {
		// An inactive rule is the off switch, not a failure.
		if errors.Is(err, rule.ErrRuleInactive) {
			j.sink.RecordSchedulerSkip()
			return
		}

		j.logger.ErrorContext(ctx, "Auto-assign tick failed", "error", err)
		j.sink.RecordSchedulerError()
		return
	}

	j.sink.RecordSchedulerTick(result.Assigned, result.Failed)
	if result.Assigned > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Auto-assign tick completed",
			"assigned", result.Assigned, "failed", result.Failed)
	}
}
