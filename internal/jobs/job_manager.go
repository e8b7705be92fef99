package jobs

import (
	"fmt"
	"log/slog"

	"foodbridge/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	discoveryRefreshJob *DiscoveryRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	repo ports.PackageRepository,
	cache ports.DiscoveryCache,
	refreshSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		discoveryRefreshJob: NewDiscoveryRefreshJob(repo, cache, refreshSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.discoveryRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start discovery refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.discoveryRefreshJob.Stop()
}

// DiscoveryRefresh exposes the refresh job for one-off warm-up at startup.
func (jm *JobManager) DiscoveryRefresh() *DiscoveryRefreshJob {
	return jm.discoveryRefreshJob
}
