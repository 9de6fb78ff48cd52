package ratelimit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// Result carries the limiter metadata echoed to clients on both allowed and
// throttled requests.
type Result struct {
	Success   bool      `json:"success"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// RetryAfterSeconds is the whole-second wait a throttled caller is told,
// rounded up so it never retries early.
func (r Result) RetryAfterSeconds(now time.Time) int {
	secs := int(math.Ceil(r.ResetAt.Sub(now).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// CounterStore counts hits per key within a fixed window. Implementations
// must be safe for concurrent use from parallel requests.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Limiter is a per-user fixed-window rate limiter.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
}

func New(store CounterStore, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Check counts a hit for userID and reports whether it is within the limit.
func (l *Limiter) Check(ctx context.Context, userID int64) (Result, error) {
	key := fmt.Sprintf("chat:%d", userID)

	count, resetAt, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Success:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a mutex-guarded in-process counter store, good for a single
// instance and for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &memoryEntry{resetAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++

	return e.count, e.resetAt, nil
}
