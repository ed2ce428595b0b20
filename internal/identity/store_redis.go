package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"teamup/pkg/platform/sentinel"
)

// Redis key prefix for session identities.
const sessionKeyPrefix = "session:phone:"

// RedisStore persists session identities in Redis with a TTL. This is the
// production store: identities survive restarts and are shared between
// instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a Redis-backed session store. Entries expire after
// ttl of inactivity; every Put refreshes the clock.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get session identity: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID, canonicalPhone string) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, canonicalPhone, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session identity: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session identity: %w", err)
	}
	return nil
}
