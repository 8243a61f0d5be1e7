package cron

import (
	"context"
	"log/slog"
	"time"
)

// Pruner drops expired entries and reports how many were removed.
type Pruner interface {
	Prune() int
}

type CacheJobs struct {
	monthViews Pruner
	interval   time.Duration
}

func NewCacheJobs(monthViews Pruner, interval time.Duration) *CacheJobs {
	return &CacheJobs{
		monthViews: monthViews,
		interval:   interval,
	}
}

func (j *CacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("prune_month_view_cache", j.interval, j.PruneMonthViews)
}

// PruneMonthViews removes expired month views so idle employees do not pin memory.
func (j *CacheJobs) PruneMonthViews(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	removed := j.monthViews.Prune()
	if removed > 0 {
		slog.Info("Cron: pruned expired month views", "removed", removed)
	}
	return nil
}
