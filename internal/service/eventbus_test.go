package service

import (
	"sync"
	"testing"

	"github.com/bnema/clipr/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishToSubscribers(t *testing.T) {
	bus := NewEventBus()
	a := bus.Subscribe("job-1")
	b := bus.Subscribe("job-1")
	other := bus.Subscribe("job-2")

	bus.Publish("job-1", domain.Event{Type: domain.EventProgress, Percent: 20})

	assert.Equal(t, 20, (<-a).Percent)
	assert.Equal(t, 20, (<-b).Percent)
	assert.Empty(t, other)
}

func TestEventBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("job-1")
	require.Equal(t, 1, bus.SubscriberCount("job-1"))

	bus.Unsubscribe("job-1", ch)

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, bus.SubscriberCount("job-1"))
	assert.NotPanics(t, func() { bus.Publish("job-1", domain.Event{}) })
}

func TestEventBus_DropsForSlowSubscriber(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe("job-1")

	for i := 0; i < 100; i++ {
		bus.Publish("job-1", domain.Event{Type: domain.EventProgress, Percent: i})
	}

	assert.Len(t, ch, cap(ch))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingPublisher) Publish(_ string, event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingPublisher) all() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

func (r *recordingPublisher) ofType(t domain.EventType) []domain.Event {
	var out []domain.Event
	for _, e := range r.all() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func TestFanout_PublishesToAll(t *testing.T) {
	a, b := &recordingPublisher{}, &recordingPublisher{}
	f := Fanout{a, nil, b}

	f.Publish("job-1", domain.Event{Type: domain.EventLog, Message: "hello"})

	assert.Len(t, a.all(), 1)
	assert.Len(t, b.all(), 1)
}
