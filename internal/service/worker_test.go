package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context, jobID string)

func (f runnerFunc) Run(ctx context.Context, jobID string) { f(ctx, jobID) }

func newTestPool(runner JobRunner, workers int) *WorkerPool {
	wp := NewWorkerPool(runner, workers)
	wp.pollInterval = 10 * time.Millisecond
	return wp
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	var mu sync.Mutex
	perJob := map[string]int{}
	var wg sync.WaitGroup

	runner := runnerFunc(func(_ context.Context, jobID string) {
		defer wg.Done()
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		mu.Lock()
		perJob[jobID]++
		mu.Unlock()
		time.Sleep(15 * time.Millisecond)
	})

	wp := newTestPool(runner, 2)
	ids := []string{"a", "b", "c", "d", "e", "f"}
	wg.Add(len(ids))
	for _, id := range ids {
		wp.Enqueue(id, "user")
	}
	wp.Start(context.Background())
	wg.Wait()
	require.NoError(t, wp.Stop(time.Second))

	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
	assert.Len(t, perJob, len(ids))
	for id, n := range perJob {
		assert.Equal(t, 1, n, "job %s ran %d times", id, n)
	}
}

func TestWorkerPool_FIFOWithSingleWorker(t *testing.T) {
	var mu sync.Mutex
	var order []string
	var wg sync.WaitGroup
	runner := runnerFunc(func(_ context.Context, jobID string) {
		mu.Lock()
		order = append(order, jobID)
		mu.Unlock()
		wg.Done()
	})

	wp := newTestPool(runner, 1)
	wg.Add(3)
	wp.Enqueue("1", "u")
	wp.Enqueue("2", "u")
	wp.Enqueue("3", "u")
	wp.Start(context.Background())
	wg.Wait()
	require.NoError(t, wp.Stop(time.Second))

	assert.Equal(t, []string{"1", "2", "3"}, order)
}

func TestWorkerPool_CancelRunningJob(t *testing.T) {
	started := make(chan struct{})
	finished := make(chan error, 1)
	runner := runnerFunc(func(ctx context.Context, _ string) {
		close(started)
		<-ctx.Done()
		finished <- ctx.Err()
	})

	wp := newTestPool(runner, 1)
	wp.Start(context.Background())
	defer func() { _ = wp.Stop(time.Second) }()
	wp.Enqueue("a", "u")
	<-started

	assert.Equal(t, []string{"a"}, wp.ActiveJobs())
	assert.True(t, wp.Cancel("a"))

	select {
	case err := <-finished:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("run was not cancelled")
	}
}

func TestWorkerPool_CancelQueuedJob(t *testing.T) {
	release := make(chan struct{})
	results := make(chan string, 2)
	runner := runnerFunc(func(ctx context.Context, jobID string) {
		if jobID == "a" {
			<-release
		}
		if ctx.Err() != nil {
			results <- jobID + ":cancelled"
			return
		}
		results <- jobID + ":ran"
	})

	wp := newTestPool(runner, 1)
	wp.Enqueue("a", "u")
	wp.Enqueue("b", "u")
	wp.Start(context.Background())
	defer func() { _ = wp.Stop(time.Second) }()

	require.Eventually(t, func() bool { return wp.QueueLength() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, wp.Cancel("b"))
	close(release)

	assert.Equal(t, "a:ran", <-results)
	assert.Equal(t, "b:cancelled", <-results)
}

func TestWorkerPool_CancelUnknownJob(t *testing.T) {
	wp := newTestPool(runnerFunc(func(context.Context, string) {}), 1)
	assert.False(t, wp.Cancel("nope"))
}

func TestWorkerPool_RecoversFromPanic(t *testing.T) {
	done := make(chan string, 1)
	runner := runnerFunc(func(_ context.Context, jobID string) {
		if jobID == "boom" {
			panic("runner bug")
		}
		done <- jobID
	})

	wp := newTestPool(runner, 1)
	wp.Enqueue("boom", "u")
	wp.Enqueue("ok", "u")
	wp.Start(context.Background())
	defer func() { _ = wp.Stop(time.Second) }()

	select {
	case id := <-done:
		assert.Equal(t, "ok", id)
	case <-time.After(time.Second):
		t.Fatal("worker did not survive the panic")
	}
	assert.True(t, wp.Running())
}

func TestWorkerPool_StopTimesOut(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	runner := runnerFunc(func(context.Context, string) {
		close(started)
		<-release
	})

	wp := newTestPool(runner, 1)
	wp.Start(context.Background())
	wp.Enqueue("slow", "u")
	<-started

	err := wp.Stop(20 * time.Millisecond)
	assert.Error(t, err)
	assert.False(t, wp.Running())

	close(release)
	assert.NoError(t, wp.Stop(time.Second))
}

func TestWorkerPool_StopWithoutStart(t *testing.T) {
	wp := newTestPool(runnerFunc(func(context.Context, string) {}), 1)
	assert.NoError(t, wp.Stop(time.Millisecond))
}

// A second job stays pending until the only worker finishes the first.
func TestWorkerPool_SecondJobWaitsForFirst(t *testing.T) {
	h := newHarness(t)
	h.createJob(t, "first")
	h.createJob(t, "second")

	release := make(chan struct{})
	h.source.EXPECT().Metadata(mock.Anything, testURL).
		RunAndReturn(func(context.Context, string) (*domain.VideoMetadata, error) {
			<-release
			return nil, domain.ErrNoMetadata
		}).Once()
	h.source.EXPECT().Metadata(mock.Anything, testURL).
		Return(nil, domain.ErrNoMetadata).Once()

	wp := newTestPool(h.pipeline, 1)
	_, err := Recover(context.Background(), h.store, wp)
	require.NoError(t, err)
	wp.Start(context.Background())
	defer func() { _ = wp.Stop(time.Second) }()

	require.Eventually(t, func() bool {
		return h.store.job("first").Status == domain.JobStatusDownloading
	}, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, domain.JobStatusPending, h.store.job("second").Status)

	close(release)

	require.Eventually(t, func() bool {
		return h.store.job("second").Status.IsTerminal()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.JobStatusFailed, h.store.job("first").Status)
	assert.Equal(t, []domain.JobStatus{domain.JobStatusPending, domain.JobStatusDownloading, domain.JobStatusFailed}, h.store.statuses("second"))
}

func TestWorkerPool_CancelAfterDequeue(t *testing.T) {
	wp := newTestPool(runnerFunc(func(context.Context, string) {}), 1)
	wp.Enqueue("job-1", "user")

	job, ok := wp.dequeue(context.Background())
	require.True(t, ok)
	defer job.cancel()

	assert.True(t, wp.Cancel("job-1"))
	assert.Equal(t, []string{"job-1"}, wp.ActiveJobs())
	assert.ErrorIs(t, job.ctx.Err(), context.Canceled)
}

func TestWorkerPool_DequeueAppliesQueuedCancel(t *testing.T) {
	wp := newTestPool(runnerFunc(func(context.Context, string) {}), 1)
	wp.Enqueue("job-1", "user")
	require.True(t, wp.Cancel("job-1"))

	job, ok := wp.dequeue(context.Background())
	require.True(t, ok)
	defer job.cancel()

	assert.ErrorIs(t, job.ctx.Err(), context.Canceled)
	assert.Equal(t, 0, wp.QueueLength())
}

func TestWorkerPool_StartAfterStopIsRefused(t *testing.T) {
	var runs atomic.Int32
	wp := newTestPool(runnerFunc(func(context.Context, string) { runs.Add(1) }), 1)
	wp.Start(context.Background())
	require.NoError(t, wp.Stop(time.Second))

	wp.Start(context.Background())
	wp.Enqueue("job-1", "user")
	time.Sleep(30 * time.Millisecond)

	assert.False(t, wp.Running())
	assert.Equal(t, int32(0), runs.Load())
	assert.Equal(t, 1, wp.QueueLength())
	assert.NoError(t, wp.Stop(time.Second))
}
