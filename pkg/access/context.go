// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"

	"github.com/canonical/access-service/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context with the given identity context derived
// from the parent context.
func WithPrincipal(ctx context.Context, principal *types.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext retrieves the identity context from the context.
// Returns nil and false if no principal is present.
func PrincipalFromContext(ctx context.Context) (*types.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*types.Principal)
	return principal, ok
}
