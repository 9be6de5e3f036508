// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
)

var _ CacheInterface = (*Cache)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
	// TTL is the single process-wide expiry applied to every entry.
	TTL time.Duration
}

type Cache struct {
	client *redis.Client
	ttl    time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := c.tracer.Start(ctx, "cache.Cache.Get")
	defer span.End()

	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	return value, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := c.tracer.Start(ctx, "cache.Cache.Set")
	defer span.End()

	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// NewCache creates a Cache around a dedicated Redis client. The client is an
// injected, long-lived handle owned by the caller's lifecycle, not a package
// global.
func NewCache(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return NewCacheFromClient(client, cfg.TTL, tracer, monitor, logger)
}

// NewCacheFromClient wraps an existing Redis client, used by tests to point at
// an in-memory server.
func NewCacheFromClient(client *redis.Client, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Cache {
	c := new(Cache)

	c.client = client
	c.ttl = ttl

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
