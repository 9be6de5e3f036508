// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"

	"github.com/canonical/access-service/internal/types"
)

// EndpointMetadata is the module/permission requirement attached to a route.
// The zero value marks an unrestricted endpoint.
type EndpointMetadata struct {
	Module     string
	Permission string
}

type ServiceInterface interface {
	// Authorize runs the full pipeline for a raw session token and the
	// matched route's metadata, returning the authorized identity context
	// or a rejection.
	Authorize(ctx context.Context, rawToken string, meta EndpointMetadata) (*types.Principal, error)
}

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetCurrentSubscriptionByTenantID(ctx context.Context, tenantID string) (*types.SubscriptionHistory, error)
	GetAccountTypeModules(ctx context.Context, accountTypeID string) ([]types.ModuleDefinition, error)
	GetTenantDefaultModules(ctx context.Context, tenantID string) ([]types.ModuleDefinition, error)
}

type CacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
