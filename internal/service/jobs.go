package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
	"github.com/google/uuid"
)

var (
	ErrInvalidURL      = errors.New("invalid video url")
	ErrAlreadyFinished = errors.New("job already finished")
)

// JobService is the entry point for creating, reading and cancelling jobs.
type JobService struct {
	store port.JobStore
	queue port.JobQueue
	now   func() time.Time
}

func NewJobService(store port.JobStore, queue port.JobQueue) *JobService {
	return &JobService{
		store: store,
		queue: queue,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a pending job and queues it.
func (s *JobService) Create(ctx context.Context, videoURL, userID string) (*domain.Job, error) {
	videoURL = strings.TrimSpace(videoURL)
	u, err := url.Parse(videoURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, videoURL)
	}

	job := &domain.Job{
		ID:          uuid.NewString(),
		UserID:      userID,
		VideoURL:    videoURL,
		Status:      domain.JobStatusPending,
		CurrentStep: "Queued",
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.queue.Enqueue(job.ID, job.UserID)
	logger.Info.Printf("job %s queued for %s", job.ID, logger.RedactURL(videoURL))
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, []domain.Clip, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	clips, err := s.store.ListClips(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list clips: %w", err)
	}
	return job, clips, nil
}

// Cancel asks the worker pool to stop the job. A pending job the pool does
// not know about is cancelled directly in the store.
func (s *JobService) Cancel(ctx context.Context, id string) error {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrAlreadyFinished, job.Status)
	}
	if s.queue.Cancel(id) {
		logger.Info.Printf("cancellation requested for job %s", id)
		return nil
	}
	if job.Status != domain.JobStatusPending {
		// Running elsewhere or orphaned; the pool owns it.
		return nil
	}
	if err := job.TransitionTo(domain.JobStatusCancelled, s.now()); err != nil {
		return err
	}
	job.ErrorMessage = domain.CancelledMessage
	if err := s.store.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("cancel job: %w", err)
	}
	return nil
}
