//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"punchclock/internal/platform/config"
)

// RedisContainer is the shared Redis used by device lock tests.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// NewRedisContainer starts Redis and connects a raw client for cleanup.
// The Manager owns the container; Ryuk removes it when the run ends.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("parse redis URL %q: %v", url, err)
	}
	return &RedisContainer{Container: container, URL: url, Client: redis.NewClient(opts)}
}

// Config points the application's Redis settings at this container.
func (r *RedisContainer) Config(keyPrefix string) config.RedisConfig {
	return config.RedisConfig{URL: r.URL, KeyPrefix: keyPrefix, PoolSize: 4}
}

// FlushAll clears every key so each test starts empty.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
