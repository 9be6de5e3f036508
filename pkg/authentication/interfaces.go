// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the only supported session token claims shape. Both identity
// claims must be present, non-empty UUIDs.
type Claims struct {
	jwt.RegisteredClaims

	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

type ProviderInterface interface {
	// Verifier returns the token verifier associated with the specified OIDC issuer
	Verifier(*oidc.Config) *oidc.IDTokenVerifier
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw session token and validates its identity claims.
	// Returns the embedded claims if the token is valid, otherwise an error.
	VerifyToken(ctx context.Context, rawToken string) (*Claims, error)
}
