package service

import (
	"sync"

	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/port"
)

type EventBus struct {
	subscribers map[string][]chan domain.Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan domain.Event),
	}
}

func (eb *EventBus) Subscribe(jobID string) chan domain.Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan domain.Event, 32)
	eb.subscribers[jobID] = append(eb.subscribers[jobID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(jobID string, ch chan domain.Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[jobID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[jobID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[jobID]) == 0 {
		delete(eb.subscribers, jobID)
	}
}

func (eb *EventBus) Publish(jobID string, event domain.Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[jobID] {
		select {
		case ch <- event:
		default:
			// Drop event if subscriber is slow
		}
	}
}

func (eb *EventBus) SubscriberCount(jobID string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers[jobID])
}

// Fanout delivers each event to every publisher in order.
type Fanout []port.EventPublisher

func (f Fanout) Publish(jobID string, event domain.Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(jobID, event)
		}
	}
}

var (
	_ port.EventPublisher = (*EventBus)(nil)
	_ port.EventPublisher = Fanout(nil)
)
