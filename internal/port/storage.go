package port

import (
	"context"

	"github.com/bnema/clipr/internal/domain"
)

// JobStore is the durable record of jobs and their clips. Every write is
// visible to readers once the call returns.
type JobStore interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	UpdateJob(ctx context.Context, job *domain.Job) error
	// CompleteJob persists the job's terminal state and its clips atomically.
	CompleteJob(ctx context.Context, job *domain.Job, clips []domain.Clip) error
	ListClips(ctx context.Context, jobID string) ([]domain.Clip, error)
	// ListJobsByStatus returns matching jobs ordered by creation time.
	ListJobsByStatus(ctx context.Context, statuses ...domain.JobStatus) ([]*domain.Job, error)
	FailActiveJobs(ctx context.Context, message string) (int64, error)
}
