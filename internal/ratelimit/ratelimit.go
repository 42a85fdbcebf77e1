// Package ratelimit implements a fixed-window per-identifier request cap.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of one rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter caps requests per identifier within a fixed window. State is
// in-memory only; loss across restarts is accepted policy. The limiter is
// constructed once and injected into the handler, never a package global.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	max     int
	window  time.Duration
	now     func() time.Time
}

// New creates a Limiter allowing max requests per window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Check records one request for id and reports whether it is allowed.
// The check-then-increment is a single critical section so two concurrent
// requests cannot both claim the last slot.
func (l *Limiter) Check(id string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.purge(now)

	e, ok := l.entries[id]
	if !ok || now.After(e.resetAt) {
		l.entries[id] = &entry{count: 1, resetAt: now.Add(l.window)}
		return Result{Allowed: true, Remaining: l.max - 1}
	}

	if e.count >= l.max {
		return Result{Allowed: false, Remaining: 0}
	}

	e.count++
	return Result{Allowed: true, Remaining: l.max - e.count}
}

// purge drops expired windows. Called under l.mu.
func (l *Limiter) purge(now time.Time) {
	for id, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, id)
		}
	}
}
