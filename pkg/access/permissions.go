// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/canonical/access-service/internal/types"
)

func tenantPermissionsCacheKey(tenantID string) string {
	return fmt.Sprintf("tenant_account_permissions:%s", tenantID)
}

// resolvePermissions builds the effective module/permission map for a user,
// cache-aside like the entity loaders. A user with an explicit account type
// always resolves via that type; otherwise via the tenant's default set.
func (s *Service) resolvePermissions(ctx context.Context, user *types.User) (types.PermissionSet, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.resolvePermissions")
	defer span.End()

	key := user.AccountTypeID
	if key == "" {
		key = tenantPermissionsCacheKey(user.TenantID)
	}

	value, found, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !found {
		var modules []types.ModuleDefinition
		if user.AccountTypeID != "" {
			modules, err = s.storage.GetAccountTypeModules(ctx, user.AccountTypeID)
		} else {
			modules, err = s.storage.GetTenantDefaultModules(ctx, user.TenantID)
		}
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(buildPermissionSet(modules))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize permission set: %w", err)
		}

		if err := s.cache.Set(ctx, key, payload); err != nil {
			return nil, err
		}

		value = payload
	}

	set := types.PermissionSet{}
	if err := json.Unmarshal(value, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	return set, nil
}

// buildPermissionSet derives the resolved mapping from backing-store module
// definitions. A permission is allowed only when both its own flag and the
// owning module's flag are set.
func buildPermissionSet(modules []types.ModuleDefinition) types.PermissionSet {
	set := make(types.PermissionSet, len(modules))

	for _, module := range modules {
		allowed := make(map[string]bool, len(module.Permissions))
		for _, permission := range module.Permissions {
			allowed[permission.Name] = permission.IsChecked && module.IsChecked
		}

		set[module.Slug] = types.ModulePermissions{
			ModuleStatus: module.IsChecked,
			Permissions:  allowed,
		}
	}

	return set
}
