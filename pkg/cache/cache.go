// Package cache provides a JSON value cache backed by Redis with lifecycle coordination.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/bizz/pkg/lifecycle"
)

// System stores JSON-encoded values under namespaced keys.
type System interface {
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// Get decodes the value at key into dest. Returns ErrMiss if the key is absent.
	Get(ctx context.Context, key string, dest any) error
	// Set encodes value and stores it at key. A zero ttl uses the configured default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a cache system from the given configuration.
// When the cache is disabled it returns a System where every Get misses.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "cache")

	if !cfg.Enabled {
		return &noop{logger: logger}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	opts.PoolSize = cfg.PoolSize

	return NewFromClient(redis.NewClient(opts), cfg.Prefix, cfg.TTLDuration(), logger), nil
}

// NewFromClient wraps an existing Redis client.
func NewFromClient(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) System {
	return &redisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		if err := c.client.Ping(lc.Context()).Err(); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}
		c.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}
		c.logger.Info("cache connection closed")
	})

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = c.ttl
	}

	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}

	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

func (c *redisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

type noop struct {
	logger *slog.Logger
}

func (n *noop) Start(lc *lifecycle.Coordinator) error {
	n.logger.Info("cache disabled")
	return nil
}

func (n *noop) Get(ctx context.Context, key string, dest any) error {
	return ErrMiss
}

func (n *noop) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (n *noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}
