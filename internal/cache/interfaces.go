// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
)

type CacheInterface interface {
	// Get returns the cached value for key. Absent or expired keys report
	// found=false, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites key and resets its TTL to the configured duration.
	Set(ctx context.Context, key string, value []byte) error
}
