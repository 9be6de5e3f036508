// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/tracing"
)

func setupCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c := NewCacheFromClient(client, ttl, tracing.NewTracer(tracing.NewNoopConfig()), nil, logging.NewNoopLogger())
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestCache_GetAbsentKey(t *testing.T) {
	c, _ := setupCache(t, time.Minute)

	value, found, err := c.Get(context.Background(), "user:missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Errorf("expected absent key, got value %q", value)
	}
}

func TestCache_SetThenGet(t *testing.T) {
	c, _ := setupCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "tenant:t1", []byte(`{"id":"t1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, found, err := c.Get(ctx, "tenant:t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected key to be present")
	}
	if string(value) != `{"id":"t1"}` {
		t.Errorf("unexpected value: %q", value)
	}
}

func TestCache_SetOverwritesAndResetsTTL(t *testing.T) {
	c, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("one")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(30 * time.Second)

	if err := c.Set(ctx, "k", []byte("two")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The first TTL window has fully elapsed, the rewritten entry survives.
	mr.FastForward(45 * time.Second)

	value, found, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected key to survive TTL reset")
	}
	if string(value) != "two" {
		t.Errorf("expected overwritten value, got %q", value)
	}
}

func TestCache_ExpiredKeyIsAbsent(t *testing.T) {
	c, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected expired key to be reported absent")
	}
}
