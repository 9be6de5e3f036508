// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/canonical/access-service/internal/types"
)

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func tenantCacheKey(id string) string {
	return fmt.Sprintf("tenant:%s", id)
}

func subscriptionCacheKey(tenantID string) string {
	return fmt.Sprintf("tenant_subscription:%s", tenantID)
}

// loadCached implements the cache-aside read path shared by every entity kind:
// cache hit is served as-is within its TTL; on miss the canonical record is
// fetched, cached and used. Payloads from either path are schema-validated.
// Concurrent misses for the same key may each hit the backing store; the last
// cache write wins and the values are equivalent, so no coalescing is done.
func loadCached[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) (*T, error)) (*T, error) {
	value, found, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !found {
		entity, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", key, err)
		}

		if err := s.cache.Set(ctx, key, payload); err != nil {
			return nil, err
		}

		value = payload
	}

	entity := new(T)
	if err := json.Unmarshal(value, entity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	if err := s.validate.Struct(entity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	return entity, nil
}

func (s *Service) userByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.userByID")
	defer span.End()

	return loadCached(ctx, s, userCacheKey(id), func(ctx context.Context) (*types.User, error) {
		return s.storage.GetUserByID(ctx, id)
	})
}

func (s *Service) tenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.tenantByID")
	defer span.End()

	return loadCached(ctx, s, tenantCacheKey(id), func(ctx context.Context) (*types.Tenant, error) {
		return s.storage.GetTenantByID(ctx, id)
	})
}

func (s *Service) subscriptionByTenantID(ctx context.Context, tenantID string) (*types.SubscriptionHistory, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.subscriptionByTenantID")
	defer span.End()

	return loadCached(ctx, s, subscriptionCacheKey(tenantID), func(ctx context.Context) (*types.SubscriptionHistory, error) {
		return s.storage.GetCurrentSubscriptionByTenantID(ctx, tenantID)
	})
}
