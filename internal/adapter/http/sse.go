package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/clipr/internal/domain"
)

const keepAliveInterval = 15 * time.Second

// Subscriber is the in-process side of the event bus.
type Subscriber interface {
	Subscribe(jobID string) chan domain.Event
	Unsubscribe(jobID string, ch chan domain.Event)
}

type SSEHandler struct {
	events    Subscriber
	jobSvc    JobService
	keepAlive time.Duration
	now       func() time.Time
}

func NewSSEHandler(events Subscriber, jobSvc JobService) *SSEHandler {
	return &SSEHandler{
		events:    events,
		jobSvc:    jobSvc,
		keepAlive: keepAliveInterval,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendEvent(w http.ResponseWriter, event domain.Event) error {
	body, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	sseWrite(w, string(event.Type), string(body))
	return nil
}

// snapshot turns the stored job into the event a late subscriber would have
// seen last.
func (h *SSEHandler) snapshot(job *domain.Job) domain.Event {
	ev := domain.Event{JobID: job.ID, Timestamp: h.now()}
	switch job.Status {
	case domain.JobStatusCompleted:
		ev.Type = domain.EventComplete
		ev.ClipsCreated = job.ClipsCreated
	case domain.JobStatusFailed, domain.JobStatusCancelled:
		ev.Type = domain.EventError
		ev.Message = job.ErrorMessage
	default:
		ev.Type = domain.EventProgress
		ev.Percent = job.Progress
		ev.Step = job.CurrentStep
	}
	return ev
}

func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Missing job ID")
			return
		}

		// Subscribe before reading the job so no event falls between the two.
		ch := h.events.Subscribe(id)
		defer h.events.Unsubscribe(id, ch)

		job, _, err := h.jobSvc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Job not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to load job")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		current := h.snapshot(job)
		_ = sendEvent(w, current)
		if current.IsTerminal() {
			return
		}

		h.stream(r.Context(), w, ch)
	}
}

func (h *SSEHandler) stream(ctx context.Context, w http.ResponseWriter, ch <-chan domain.Event) {
	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			sendKeepAlive(w)
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := sendEvent(w, event); err != nil {
				return
			}
			if event.IsTerminal() {
				return
			}
		}
	}
}
