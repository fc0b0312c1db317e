package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "sms:idempotency:"
	pingTimeout      = 5 * time.Second
)

// RedisIdempotencyStore shares idempotency state across instances through
// Redis, so a retried send lands on a different replica and is still
// recognized as a duplicate
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)

// RedisConfig holds the connection parameters for the Redis store
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisIdempotencyStore connects to Redis and verifies the connection
// with a ping before returning
func NewRedisIdempotencyStore(cfg RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisIdempotencyStoreWithClient(client, defaultKeyPrefix), nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client, for tests
// and for callers that share one client across components
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisIdempotencyStore) key(requestKey string) string {
	return s.keyPrefix + requestKey
}

// MarkProcessed records the key with a TTL using SETNX, so checking and
// setting is one atomic round trip. Returns false when the key already
// existed.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, requestKey string, ttl time.Duration) (bool, error) {
	set, err := s.client.SetNX(ctx, s.key(requestKey), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark request as processed: %w", err)
	}
	return set, nil
}

// IsProcessed reports whether the key exists. Redis expires keys itself,
// so existence implies the TTL has not run out.
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, requestKey string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(requestKey)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if request is processed: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// GetClient exposes the underlying client for monitoring
func (s *RedisIdempotencyStore) GetClient() *redis.Client {
	return s.client
}
