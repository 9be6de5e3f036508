// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/access-service/internal/types"
)

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	// GetCurrentSubscriptionByTenantID returns the tenant's most recent
	// subscription term, or ErrNotFound if the tenant never subscribed.
	GetCurrentSubscriptionByTenantID(ctx context.Context, tenantID string) (*types.SubscriptionHistory, error)
	GetAccountTypeModules(ctx context.Context, accountTypeID string) ([]types.ModuleDefinition, error)
	// GetTenantDefaultModules returns the tenant's default permission set,
	// used for users without an explicit account type.
	GetTenantDefaultModules(ctx context.Context, tenantID string) ([]types.ModuleDefinition, error)
}
