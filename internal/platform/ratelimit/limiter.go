// Package ratelimit provides per-client request throttling for the API.
package ratelimit

import (
	"sync"
	"time"
)

// entry represents a rate limit entry for a key.
type entry struct {
	count    int
	windowAt time.Time
}

// Limiter is an in-memory fixed-window rate limiter. Each key gets its
// own counter that resets when its window elapses.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rate    int
	window  time.Duration
	done    chan struct{}
}

// NewLimiter creates a limiter allowing rate requests per window per key.
// A background goroutine evicts expired entries until Close is called.
func NewLimiter(rate int, window time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		rate:    rate,
		window:  window,
		done:    make(chan struct{}),
	}

	go l.cleanup()

	return l
}

// Allow reports whether a request for the given key fits in the current
// window, counting it if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, exists := l.entries[key]

	if !exists || now.After(e.windowAt) {
		// New window
		l.entries[key] = &entry{
			count:    1,
			windowAt: now.Add(l.window),
		}
		return l.rate >= 1
	}

	if e.count >= l.rate {
		return false
	}
	e.count++
	return true
}

// Reset clears the counter for the given key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	close(l.done)
}

// cleanup periodically removes expired entries.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.removeExpired()
		}
	}
}

// removeExpired removes all expired entries.
func (l *Limiter) removeExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.entries {
		if now.After(e.windowAt) {
			delete(l.entries, key)
		}
	}
}
