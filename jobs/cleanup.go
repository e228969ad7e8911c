package jobs

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/toninews/logbook-back/repositories"
)

// CleanupJob permanently removes soft-deleted log records once they age past
// the retention horizon. It runs once at startup and then on a fixed interval;
// a tick that fires while a sweep is still in flight is skipped, not queued.
type CleanupJob struct {
	logRepo       repositories.LogRepository
	interval      time.Duration
	retentionDays int
	running       atomic.Bool
	now           func() time.Time
}

// NewCleanupJob creates a retention sweeper for soft-deleted logs
func NewCleanupJob(logRepo repositories.LogRepository, interval time.Duration, retentionDays int) *CleanupJob {
	return &CleanupJob{
		logRepo:       logRepo,
		interval:      interval,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Start launches the sweep loop. It returns immediately; the loop stops when
// the context is cancelled and never blocks process shutdown.
func (j *CleanupJob) Start(ctx context.Context) {
	go func() {
		j.Run(ctx)

		t := time.NewTicker(j.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				j.Run(ctx)
			}
		}
	}()
}

// Run performs a single sweep. Overlapping invocations are no-ops, and
// failures are logged and contained; the next tick retries independently.
func (j *CleanupJob) Run(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	cutoff := j.now().UTC().Add(-time.Duration(j.retentionDays) * 24 * time.Hour)

	removed, err := j.logRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		log.Printf("[CLEANUP] sweep failed: %v", err)
		return
	}

	log.Printf("[CLEANUP] logs removed: %d (soft-deleted up to %s)", removed, cutoff.Format(time.RFC3339))
}
