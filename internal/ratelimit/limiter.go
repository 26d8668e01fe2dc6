package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Memory keeps one token bucket per key. The bucket holds limit tokens and
// refills at limit per window. A key idle for a whole window has a full bucket
// again, so such keys are dropped.
type Memory struct {
	mu        sync.Mutex
	m         map[string]*memoryEntry
	r         rate.Limit
	b         int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type memoryEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		m:      make(map[string]*memoryEntry),
		r:      rate.Every(window / time.Duration(limit)),
		b:      limit,
		window: window,
		now:    time.Now,
	}
}

func (l *Memory) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.m[key]; ok {
		e.seen = now
		return e.lim
	}

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}
	e := &memoryEntry{lim: rate.NewLimiter(l.r, l.b), seen: now}
	l.m[key] = e
	return e.lim
}

// sweep runs with mu held.
func (l *Memory) sweep(now time.Time) {
	for k, e := range l.m {
		if now.Sub(e.seen) >= l.window {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}

func (l *Memory) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

func (l *Memory) Allow(_ context.Context, key string) bool {
	if key == "" {
		return true
	}
	return l.limiterFor(key).Allow()
}
