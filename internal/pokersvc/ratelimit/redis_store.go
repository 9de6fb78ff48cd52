package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares rate-limit counters across service instances. The first
// hit on a key sets the window expiry; the reset time is derived from the
// remaining TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit incr failed: %w", err)
	}

	if count == 1 {
		if err := s.rdb.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire failed: %w", err)
		}
		return count, time.Now().Add(window), nil
	}

	ttl, err := s.rdb.PTTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit ttl failed: %w", err)
	}
	if ttl < 0 {
		// key lost its expiry (e.g. restored dump); re-arm it
		ttl = window
		if err := s.rdb.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	return count, time.Now().Add(ttl), nil
}
