// Package jobs provides scheduled background tasks for the package exchange.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. DiscoveryRefreshJob - Reloads the pending package pool from storage into
// the discovery cache, so courier discovery reads stay fast and the cache
// recovers on its own after a failed invalidation.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(repo, cache, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Refresh failures are logged and retried on the next tick; the cache is
// never the source of truth, so a stale or empty cache only costs a
// database read on the discovery path.
package jobs
