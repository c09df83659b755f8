// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. OutboxDispatcherJob - Runs every second to deliver committed order
// events from the transactional outbox to the message broker
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, publisher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatcher uses the cron expression "* * * * * *" which means it runs
// every second. This keeps end-to-end event latency low without holding a
// connection open between runs.
//
// # Error Handling
//
// A failed publish stops the current run; undelivered messages stay in the
// outbox and the next run retries them. This preserves per-aggregate
// ordering at the cost of head-of-line blocking while the broker is down.
package jobs
