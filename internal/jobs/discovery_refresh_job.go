package jobs

import (
	"context"
	"log/slog"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DiscoveryRefreshJob re-warms the discovery cache on a schedule.
// The cache is advisory: command handlers invalidate it on writes, and this
// job rebuilds it from storage so most discovery reads never hit Postgres.
type DiscoveryRefreshJob struct {
	repo     ports.PackageRepository
	cache    ports.DiscoveryCache
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDiscoveryRefreshJob creates a job that reloads the pending package pool
// into the discovery cache. The schedule is a six-field cron expression.
func NewDiscoveryRefreshJob(
	repo ports.PackageRepository,
	cache ports.DiscoveryCache,
	schedule string,
	logger *slog.Logger,
) *DiscoveryRefreshJob {
	return &DiscoveryRefreshJob{
		repo:     repo,
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "discovery_refresh_job"),
	}
}

// Start begins the discovery refresh job on its configured schedule.
func (j *DiscoveryRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if err := j.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Discovery refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Discovery refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the discovery refresh job.
func (j *DiscoveryRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Discovery refresh job stopped")
}

// Refresh reloads the pending pool from storage into the cache once.
// Exposed so the composition root can warm the cache at startup.
func (j *DiscoveryRefreshJob) Refresh(ctx context.Context) error {
	// Pin the generation before the database read so a claim that lands
	// mid-refresh rejects this snapshot instead of being resurrected.
	gen, err := j.cache.Generation(ctx)
	if err != nil {
		return err
	}

	pending, err := j.repo.GetAllInStatus(ctx, foodpackage.Pending)
	if err != nil {
		return err
	}

	return j.cache.SetPending(ctx, pending, gen)
}
