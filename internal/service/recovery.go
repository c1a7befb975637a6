package service

import (
	"context"
	"fmt"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
)

// Recover reconciles the store after a restart: jobs left in an active
// status are failed, and pending jobs are queued again oldest first. Call it
// once before the worker pool starts.
func Recover(ctx context.Context, store port.JobStore, queue port.JobQueue) (requeued int, err error) {
	failed, err := store.FailActiveJobs(ctx, domain.InterruptedMessage)
	if err != nil {
		return 0, fmt.Errorf("fail interrupted jobs: %w", err)
	}
	if failed > 0 {
		logger.Warn.Printf("marked %d interrupted jobs as failed", failed)
	}

	pending, err := store.ListJobsByStatus(ctx, domain.JobStatusPending)
	if err != nil {
		return 0, fmt.Errorf("list pending jobs: %w", err)
	}
	for _, job := range pending {
		queue.Enqueue(job.ID, job.UserID)
	}
	if len(pending) > 0 {
		logger.Info.Printf("re-queued %d pending jobs", len(pending))
	}
	return len(pending), nil
}
