// Package ratelimit throttles job submissions per client.
package ratelimit

import (
	"sync"
	"time"
)

type record struct {
	count        int
	windowStart  time.Time
	lastSeen     time.Time
	blockedUntil time.Time
}

// Limiter allows up to maxRequests per window for each client. A client that
// goes over is blocked for blockDuration.
type Limiter struct {
	mu            sync.Mutex
	clients       map[string]*record
	maxRequests   int
	window        time.Duration
	blockDuration time.Duration
	now           func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func New(maxRequests int, window, blockDuration time.Duration) *Limiter {
	l := &Limiter{
		clients:       make(map[string]*record),
		maxRequests:   maxRequests,
		window:        window,
		blockDuration: blockDuration,
		now:           time.Now,
		stop:          make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow records a request from clientID. When it returns false the second
// value is how long the client must wait.
func (l *Limiter) Allow(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.clients[clientID]
	if !ok {
		rec = &record{windowStart: now}
		l.clients[clientID] = rec
	}
	rec.lastSeen = now

	if now.Before(rec.blockedUntil) {
		return false, rec.blockedUntil.Sub(now)
	}
	if now.Sub(rec.windowStart) > l.window {
		rec.count = 0
		rec.windowStart = now
	}

	rec.count++
	if rec.count > l.maxRequests {
		rec.blockedUntil = now.Add(l.blockDuration)
		rec.count = 0
		rec.windowStart = rec.blockedUntil
		return false, l.blockDuration
	}
	return true, 0
}

func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for id, rec := range l.clients {
		if now.Sub(rec.lastSeen) > l.window*2 && now.After(rec.blockedUntil) {
			delete(l.clients, id)
		}
	}
}
