// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// The only job today is AutoAssignJob, which runs the auto-assign pass at a
// configurable interval: snapshot the rule and the candidate pools, rank
// riders per order, and commit assignments through the assignment
// coordinator.
//
// Jobs are managed through JobManager, which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(autoAssignHandler, sink, interval, tickTimeout, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// Error handling:
//   - An inactive rule is treated as the scheduler's off switch and only
//     counted, never logged as an error
//   - Per-order failures inside a pass never abort the pass; they surface
//     in the tick result and the scheduler metrics
//   - A tick that outlives the interval blocks the next tick from starting;
//     the skipped tick is logged
package jobs
