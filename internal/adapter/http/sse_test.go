package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSSEWrite_MultiLine(t *testing.T) {
	rec := httptest.NewRecorder()

	sseWrite(rec, "log", "first\nsecond")

	assert.Equal(t, "event: log\ndata: first\ndata: second\n\n", rec.Body.String())
}

func TestSnapshot(t *testing.T) {
	h := NewSSEHandler(nil, nil)
	tests := []struct {
		name string
		job  *domain.Job
		want domain.EventType
	}{
		{name: "running", job: &domain.Job{ID: "j", Status: domain.JobStatusTranscribing, Progress: 45, CurrentStep: "Transcribing audio"}, want: domain.EventProgress},
		{name: "completed", job: &domain.Job{ID: "j", Status: domain.JobStatusCompleted, ClipsCreated: 3}, want: domain.EventComplete},
		{name: "failed", job: &domain.Job{ID: "j", Status: domain.JobStatusFailed, ErrorMessage: "Video download failed"}, want: domain.EventError},
		{name: "cancelled", job: &domain.Job{ID: "j", Status: domain.JobStatusCancelled, ErrorMessage: domain.CancelledMessage}, want: domain.EventError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := h.snapshot(tt.job)
			assert.Equal(t, tt.want, ev.Type)
			assert.Equal(t, "j", ev.JobID)
			switch ev.Type {
			case domain.EventProgress:
				assert.Equal(t, 45, ev.Percent)
				assert.Equal(t, "Transcribing audio", ev.Step)
			case domain.EventComplete:
				assert.Equal(t, 3, ev.ClipsCreated)
			case domain.EventError:
				assert.Equal(t, tt.job.ErrorMessage, ev.Message)
			}
		})
	}
}

func TestEvents_TerminalJobEndsImmediately(t *testing.T) {
	job := pendingJob("job-1")
	job.Status = domain.JobStatusCompleted
	job.ClipsCreated = 2
	svc := new(jobServiceMock)
	svc.On("Get", mock.Anything, "job-1").Return(job, nil, nil)
	bus := service.NewEventBus()
	s := NewServer(svc, bus, nil, false)

	rec := do(t, s, http.MethodGet, "/events/job-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: complete\n")
	assert.Contains(t, rec.Body.String(), `"clips_created":2`)
	assert.Equal(t, 0, bus.SubscriberCount("job-1"))
}

func TestEvents_UnknownJob(t *testing.T) {
	svc := new(jobServiceMock)
	svc.On("Get", mock.Anything, "nope").Return(nil, nil, domain.ErrNotFound)
	bus := service.NewEventBus()
	s := NewServer(svc, bus, nil, false)

	rec := do(t, s, http.MethodGet, "/events/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, bus.SubscriberCount("nope"))
}

func TestEvents_StreamsUntilTerminal(t *testing.T) {
	job := pendingJob("job-1")
	job.Status = domain.JobStatusDownloading
	job.Progress = 20
	job.CurrentStep = "Downloading video"
	svc := new(jobServiceMock)
	svc.On("Get", mock.Anything, "job-1").Return(job, nil, nil)
	bus := service.NewEventBus()
	srv := httptest.NewServer(NewServer(svc, bus, nil, false))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events/job-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: progress\n", line)

	require.Eventually(t, func() bool { return bus.SubscriberCount("job-1") == 1 }, time.Second, 5*time.Millisecond)
	now := time.Now().UTC()
	bus.Publish("job-1", domain.Event{Type: domain.EventLog, JobID: "job-1", Message: "Downloaded", Level: domain.LevelSuccess, Timestamp: now})
	bus.Publish("job-1", domain.Event{Type: domain.EventComplete, JobID: "job-1", ClipsCreated: 1, Timestamp: now})

	rest, err := io.ReadAll(reader)
	require.NoError(t, err)
	body := string(rest)
	assert.Contains(t, body, `"step":"Downloading video"`)
	assert.Contains(t, body, "event: log\n")
	assert.Contains(t, body, `"level":"success"`)
	assert.Contains(t, body, "event: complete\n")
	require.Eventually(t, func() bool { return bus.SubscriberCount("job-1") == 0 }, time.Second, 5*time.Millisecond)
}

func TestEvents_KeepAlive(t *testing.T) {
	job := pendingJob("job-1")
	svc := new(jobServiceMock)
	svc.On("Get", mock.Anything, "job-1").Return(job, nil, nil)
	bus := service.NewEventBus()
	s := NewServer(svc, bus, nil, false)
	s.sseHandler.keepAlive = 10 * time.Millisecond
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events/job-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if line == ": keep-alive\n" {
			break
		}
	}
	cancel()
}
