// Package redis connects the shared cache that holds kiosk device lock state.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"punchclock/internal/platform/config"
)

// Client is a pinged go-redis client plus the key prefix every punchclock
// key is written under.
type Client struct {
	*redis.Client
	prefix string
}

// New connects using cfg. An empty URL means Redis is not configured and
// returns a nil client with no error.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{Client: client, prefix: cfg.KeyPrefix}, nil
}

// Prefix is the namespace for keys written through this client.
func (c *Client) Prefix() string {
	return c.prefix
}

// Health reports whether the server still answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
