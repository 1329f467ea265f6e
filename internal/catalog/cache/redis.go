package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"corralon_backend/internal/catalog/transport"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "catalog:snapshot:"

// RedisStore is a SnapshotStore backed by Redis, for sharing the catalog
// cache between instances. Snapshots are stored as JSON with Redis-side TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a snapshot store on top of an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromURL connects to Redis using a redis:// URL.
func NewRedisStoreFromURL(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts)), nil
}

// Ping verifies connectivity to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Get returns the cached snapshot for key if present.
func (s *RedisStore) Get(ctx context.Context, key string) (transport.Snapshot, bool, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return transport.Snapshot{}, false, nil
	}
	if err != nil {
		return transport.Snapshot{}, false, fmt.Errorf("redis get snapshot: %w", err)
	}

	var snapshot transport.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		// A corrupt entry behaves like a miss so the gateway refetches.
		return transport.Snapshot{}, false, nil
	}
	return snapshot, true, nil
}

// Set stores a snapshot under key for the given TTL.
func (s *RedisStore) Set(ctx context.Context, key string, snapshot transport.Snapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Clear drops all cached snapshots.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	keys := make([]string, 0, 4)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan snapshots: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete snapshots: %w", err)
	}
	return nil
}

var _ SnapshotStore = (*RedisStore)(nil)
