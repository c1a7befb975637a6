package service

import (
	"context"
	"errors"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/port"
	"golang.org/x/sync/errgroup"
)

const defaultPollInterval = time.Second

// JobRunner runs one job to a terminal state.
type JobRunner interface {
	Run(ctx context.Context, jobID string)
}

type queuedJob struct {
	jobID  string
	userID string
}

// WorkerPool runs queued jobs on a fixed number of workers. The backlog is
// an unbounded in-memory FIFO; Enqueue never blocks.
type WorkerPool struct {
	runner       JobRunner
	workers      int
	pollInterval time.Duration

	mu        sync.Mutex
	backlog   []queuedJob
	cancelled map[string]bool
	active    map[string]context.CancelFunc
	wake      chan struct{}

	running  atomic.Bool
	group    *errgroup.Group
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewWorkerPool(runner JobRunner, workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		runner:       runner,
		workers:      workers,
		pollInterval: defaultPollInterval,
		cancelled:    make(map[string]bool),
		active:       make(map[string]context.CancelFunc),
		wake:         make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
	}
}

func (wp *WorkerPool) Enqueue(jobID, userID string) {
	wp.mu.Lock()
	wp.backlog = append(wp.backlog, queuedJob{jobID: jobID, userID: userID})
	wp.mu.Unlock()
	wp.signal()
}

// Cancel stops a running job at its next checkpoint, or marks a queued job
// so its run starts already cancelled. It reports whether the job was known.
func (wp *WorkerPool) Cancel(jobID string) bool {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if cancel, ok := wp.active[jobID]; ok {
		cancel()
		return true
	}
	for _, q := range wp.backlog {
		if q.jobID == jobID {
			wp.cancelled[jobID] = true
			return true
		}
	}
	return false
}

// Start launches the workers. A pool that has been stopped stays stopped.
func (wp *WorkerPool) Start(ctx context.Context) {
	select {
	case <-wp.stopCh:
		logger.Warn.Printf("worker pool already stopped, not restarting")
		return
	default:
	}
	if !wp.running.CompareAndSwap(false, true) {
		return
	}
	wp.group, ctx = errgroup.WithContext(ctx)
	for i := range wp.workers {
		wp.group.Go(func() error {
			wp.runWorker(ctx, i)
			return nil
		})
	}
	logger.Info.Printf("started %d workers", wp.workers)
}

// Stop stops taking new jobs and waits up to timeout for workers to finish
// their current run. Runs in flight are not cancelled.
func (wp *WorkerPool) Stop(timeout time.Duration) error {
	wp.running.Store(false)
	wp.stopOnce.Do(func() { close(wp.stopCh) })
	if wp.group == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- wp.group.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		logger.Info.Printf("all workers stopped")
		return err
	case <-timer.C:
		return errors.New("timed out waiting for workers to stop")
	}
}

func (wp *WorkerPool) Running() bool {
	return wp.running.Load()
}

func (wp *WorkerPool) QueueLength() int {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return len(wp.backlog)
}

// ActiveJobs returns the ids of jobs currently being run, sorted.
func (wp *WorkerPool) ActiveJobs() []string {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	ids := make([]string, 0, len(wp.active))
	for id := range wp.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (wp *WorkerPool) runWorker(ctx context.Context, id int) {
	log := logger.WithWorker(id)
	for wp.running.Load() && ctx.Err() == nil {
		wp.runOnce(ctx, id)
	}
	log.Info("worker shutting down")
}

// runOnce waits for one job and runs it. A panic is logged and swallowed so
// the worker keeps looping.
func (wp *WorkerPool) runOnce(ctx context.Context, id int) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithWorker(id).Errorf("worker panic: %v\n%s", r, debug.Stack())
		}
	}()

	job, ok := wp.dequeue(ctx)
	if !ok {
		return
	}
	defer func() {
		job.cancel()
		wp.mu.Lock()
		delete(wp.active, job.jobID)
		wp.mu.Unlock()
	}()

	logger.WithWorker(id).WithField("job_id", job.jobID).Infof("processing job for user %s", job.userID)
	wp.runner.Run(job.ctx, job.jobID)
}

type claimedJob struct {
	queuedJob
	ctx    context.Context
	cancel context.CancelFunc
}

// dequeue pops the oldest job, waiting up to pollInterval for one to arrive.
// The job moves from the backlog to the active set under one lock, so Cancel
// always finds it in one of the two.
func (wp *WorkerPool) dequeue(ctx context.Context) (claimedJob, bool) {
	timer := time.NewTimer(wp.pollInterval)
	defer timer.Stop()

	for {
		wp.mu.Lock()
		if len(wp.backlog) > 0 {
			job := wp.backlog[0]
			wp.backlog[0] = queuedJob{}
			wp.backlog = wp.backlog[1:]
			more := len(wp.backlog) > 0

			// Runs outlive the pool context so shutdown lets them finish.
			runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
			if wp.cancelled[job.jobID] {
				delete(wp.cancelled, job.jobID)
				cancel()
			}
			wp.active[job.jobID] = cancel
			wp.mu.Unlock()

			if more {
				wp.signal()
			}
			return claimedJob{queuedJob: job, ctx: runCtx, cancel: cancel}, true
		}
		wp.mu.Unlock()

		select {
		case <-wp.wake:
		case <-timer.C:
			return claimedJob{}, false
		case <-wp.stopCh:
			return claimedJob{}, false
		case <-ctx.Done():
			return claimedJob{}, false
		}
	}
}

func (wp *WorkerPool) signal() {
	select {
	case wp.wake <- struct{}{}:
	default:
	}
}

var _ port.JobQueue = (*WorkerPool)(nil)
