package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(limit int, window time.Duration) (*ChatService, *fakeMessageStore) {
	store := newFakeMessageStore()
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), limit, window)
	return NewChatService(store, limiter), store
}

func fillRoom(t *testing.T, svc *ChatService, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, _, err := svc.Post(ctx, 1, "alice", fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}
}

func TestHistoryClampsLimitAndReturnsChronological(t *testing.T) {
	svc, _ := newChatFixture(1000, time.Minute)
	fillRoom(t, svc, 150)

	page, err := svc.History(context.Background(), "", 150)
	require.NoError(t, err)

	assert.Len(t, page.Messages, 100)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.NextCursor)

	// chronological order: oldest of the page first
	for i := 1; i < len(page.Messages); i++ {
		assert.True(t, page.Messages[i-1].CreatedAt.Before(page.Messages[i].CreatedAt),
			"messages out of order at index %d", i)
	}
	assert.Equal(t, "message 149", page.Messages[len(page.Messages)-1].Content)
}

func TestHistoryDefaultsLimit(t *testing.T) {
	svc, _ := newChatFixture(1000, time.Minute)
	fillRoom(t, svc, 120)

	page, err := svc.History(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, page.Messages, 100)
	assert.True(t, page.HasMore)
}

func TestHistoryCursorWalksBackwards(t *testing.T) {
	svc, _ := newChatFixture(1000, time.Minute)
	fillRoom(t, svc, 25)

	first, err := svc.History(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, first.Messages, 10)
	require.True(t, first.HasMore)
	assert.Equal(t, "message 24", first.Messages[9].Content)

	second, err := svc.History(context.Background(), first.NextCursor, 10)
	require.NoError(t, err)
	require.Len(t, second.Messages, 10)
	assert.Equal(t, "message 14", second.Messages[9].Content)

	// no overlap between pages
	assert.True(t, second.Messages[9].CreatedAt.Before(first.Messages[0].CreatedAt))

	third, err := svc.History(context.Background(), second.NextCursor, 10)
	require.NoError(t, err)
	assert.Len(t, third.Messages, 5)
	assert.False(t, third.HasMore)
	assert.Empty(t, third.NextCursor)
}

func TestHistoryEmptyRoom(t *testing.T) {
	svc, _ := newChatFixture(1000, time.Minute)

	page, err := svc.History(context.Background(), "", 50)
	require.NoError(t, err)
	assert.NotNil(t, page.Messages)
	assert.Len(t, page.Messages, 0)
	assert.False(t, page.HasMore)
}

func TestPostRejectsEmptyAndOversizedContent(t *testing.T) {
	svc, store := newChatFixture(10, time.Minute)
	ctx := context.Background()

	_, _, err := svc.Post(ctx, 1, "alice", "   ")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	_, _, err = svc.Post(ctx, 1, "alice", string(long))
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	assert.Empty(t, store.messages)
}

func TestPostRateLimited(t *testing.T) {
	svc, store := newChatFixture(2, time.Minute)
	ctx := context.Background()

	_, res, err := svc.Post(ctx, 1, "alice", "one")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	_, res, err = svc.Post(ctx, 1, "alice", "two")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	// third message within the window is throttled and not stored
	_, res, err = svc.Post(ctx, 1, "alice", "three")
	assert.Equal(t, apperr.RateLimit, apperr.KindOf(err))
	assert.False(t, res.Success)
	assert.Greater(t, res.RetryAfterSeconds(time.Now()), 0)
	assert.Len(t, store.messages, 2)

	// other users are unaffected
	_, _, err = svc.Post(ctx, 2, "bob", "hello")
	require.NoError(t, err)
}
