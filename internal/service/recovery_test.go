package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecover_RequeuesPendingInOrder(t *testing.T) {
	store := mocks.NewJobStoreMock(t)
	queue := mocks.NewJobQueueMock(t)

	store.EXPECT().FailActiveJobs(mock.Anything, domain.InterruptedMessage).Return(int64(2), nil).Once()
	store.EXPECT().ListJobsByStatus(mock.Anything, domain.JobStatusPending).
		Return([]*domain.Job{{ID: "old", UserID: "u1"}, {ID: "new", UserID: "u2"}}, nil).Once()
	mock.InOrder(
		queue.EXPECT().Enqueue("old", "u1").Return().Call,
		queue.EXPECT().Enqueue("new", "u2").Return().Call,
	)

	n, err := Recover(context.Background(), store, queue)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecover_StoreErrors(t *testing.T) {
	store := mocks.NewJobStoreMock(t)
	store.EXPECT().FailActiveJobs(mock.Anything, mock.Anything).Return(int64(0), errors.New("locked")).Once()

	_, err := Recover(context.Background(), store, mocks.NewJobQueueMock(t))

	assert.ErrorContains(t, err, "locked")
}

func TestRecover_WithMemStore(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.CreateJob(ctx, &domain.Job{ID: "stuck", Status: domain.JobStatusSlicing}))
	require.NoError(t, store.CreateJob(ctx, &domain.Job{ID: "done", Status: domain.JobStatusCompleted}))

	wp := newTestPool(runnerFunc(func(context.Context, string) {}), 1)
	n, err := Recover(ctx, store, wp)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, domain.JobStatusFailed, store.job("stuck").Status)
	assert.Equal(t, domain.InterruptedMessage, store.job("stuck").ErrorMessage)
	assert.Equal(t, domain.JobStatusCompleted, store.job("done").Status)
}
