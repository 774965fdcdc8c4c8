package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "storefront"

// RedisStore keeps slots as JSON strings. Durable and ephemeral slots get
// their own TTL; every write refreshes it.
type RedisStore struct {
	client     redis.UniversalClient
	durableTTL time.Duration
	sessionTTL time.Duration
}

func NewRedisStore(client redis.UniversalClient, durableTTL, sessionTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		durableTTL: durableTTL,
		sessionTTL: sessionTTL,
	}
}

func (s *RedisStore) ttl(scope Scope) time.Duration {
	if scope == Durable {
		return s.durableTTL
	}
	return s.sessionTTL
}

func (s *RedisStore) Load(ctx context.Context, id Identity, slot Slot, dst any) (bool, error) {
	k, err := key(redisPrefix, id, slot)
	if err != nil {
		return false, err
	}

	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", slot.Name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", slot.Name, err)
	}
	return true, nil
}

func (s *RedisStore) Save(ctx context.Context, id Identity, slot Slot, value any) error {
	k, err := key(redisPrefix, id, slot)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot.Name, err)
	}

	if err := s.client.Set(ctx, k, raw, s.ttl(slot.Scope)).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", slot.Name, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id Identity, slots ...Slot) error {
	if len(slots) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		k, err := key(redisPrefix, id, slot)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session slots: %w", err)
	}
	return nil
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
