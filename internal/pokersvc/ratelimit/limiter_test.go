package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterFixedWindow(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	l := New(store, 3, 10*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Check(ctx, 7)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 2-i, res.Remaining)
	}

	// fourth hit within the window is rejected
	res, err := l.Check(ctx, 7)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, now.Add(10*time.Second), res.ResetAt)

	// a different user still has a fresh window
	res, err = l.Check(ctx, 8)
	require.NoError(t, err)
	assert.True(t, res.Success)

	// once the window passes, the counter starts over
	now = now.Add(11 * time.Second)
	res, err = l.Check(ctx, 7)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Remaining)
}

func TestRetryAfterRoundsUp(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	res := Result{ResetAt: now.Add(2500 * time.Millisecond)}
	assert.Equal(t, 3, res.RetryAfterSeconds(now))

	res = Result{ResetAt: now.Add(2 * time.Second)}
	assert.Equal(t, 2, res.RetryAfterSeconds(now))

	// never report zero, even right at the boundary
	res = Result{ResetAt: now}
	assert.Equal(t, 1, res.RetryAfterSeconds(now))
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, _, err := store.Incr(ctx, "chat:1", time.Minute)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, _, err := store.Incr(ctx, "chat:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines+1), count)
}
