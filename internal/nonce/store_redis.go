package nonce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vouch/pkg/platform/sentinel"
)

const nonceKeyPrefix = "nonce:"

// RedisStore is a Redis-backed nonce store. This is the recommended
// implementation for distributed deployments where issue and verify may hit
// different instances. Redis expiry enforces the TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed nonce store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save stores the record with the given TTL.
func (s *RedisStore) Save(ctx context.Context, rec Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal nonce record: %w", err)
	}
	if err := s.client.Set(ctx, nonceKeyPrefix+rec.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save nonce: %w", err)
	}
	return nil
}

// Find retrieves a record by id. Expired keys read as not found.
func (s *RedisStore) Find(ctx context.Context, id string) (Record, error) {
	payload, err := s.client.Get(ctx, nonceKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("find nonce: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal nonce record: %w", err)
	}
	return rec, nil
}
