package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a KV adapter backed by a redis server. Keys are prefixed with a
// scope so multiple clients can share one instance.
type Redis struct {
	client  *redis.Client
	scope   string
	timeout time.Duration
}

// NewRedis connects to the redis server at redisURL and scopes all keys
// under the given prefix.
func NewRedis(redisURL, scope string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &Redis{
		client:  redis.NewClient(opts),
		scope:   scope,
		timeout: 5 * time.Second,
	}, nil
}

// Close releases the underlying connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}

// GetItem returns the stored value or ErrNotFound
func (r *Redis) GetItem(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.scoped(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// SetItem stores the value under key with no expiration
func (r *Redis) SetItem(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.scoped(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (r *Redis) scoped(key string) string {
	return r.scope + ":" + key
}
