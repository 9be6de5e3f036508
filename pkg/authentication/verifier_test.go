// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/tracing"
)

const (
	testSecret   = "test-signing-secret"
	testUserID   = "6a2f41a3-c54c-fce8-32d2-0324e1c32e22"
	testTenantID = "9b3caa14-8d2f-4d86-b014-2c3b4f0f2168"
)

func newVerifier(secret string) *SecretVerifier {
	return NewSecretVerifier(secret, "HS256", tracing.NewTracer(tracing.NewNoopConfig()), nil, logging.NewNoopLogger())
}

func signToken(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestSecretVerifier_VerifyToken(t *testing.T) {
	tests := []struct {
		name      string
		token     func(*testing.T) string
		expectErr bool
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, Claims{UserID: testUserID, TenantID: testTenantID})
			},
		},
		{
			name:      "empty token",
			token:     func(t *testing.T) string { return "" },
			expectErr: true,
		},
		{
			name:      "malformed token",
			token:     func(t *testing.T) string { return "not.a.jwt" },
			expectErr: true,
		},
		{
			name: "missing user_id claim",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, Claims{TenantID: testTenantID})
			},
			expectErr: true,
		},
		{
			name: "missing tenant_id claim",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, Claims{UserID: testUserID})
			},
			expectErr: true,
		},
		{
			name: "non-uuid identity claims",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, Claims{UserID: "alice", TenantID: "acme"})
			},
			expectErr: true,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, Claims{
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
					},
					UserID:   testUserID,
					TenantID: testTenantID,
				})
			},
			expectErr: true,
		},
		{
			name: "disallowed signing algorithm",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS384, Claims{UserID: testUserID, TenantID: testTenantID})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVerifier(testSecret)

			claims, err := v.VerifyToken(context.Background(), tt.token(t))

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.UserID != testUserID {
				t.Errorf("expected user_id %q, got %q", testUserID, claims.UserID)
			}
			if claims.TenantID != testTenantID {
				t.Errorf("expected tenant_id %q, got %q", testTenantID, claims.TenantID)
			}
		})
	}
}

func TestSecretVerifier_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, Claims{UserID: testUserID, TenantID: testTenantID})

	if _, err := newVerifier("a-different-secret").VerifyToken(context.Background(), token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestNoopVerifier_TrustsClaims(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, Claims{UserID: testUserID, TenantID: testTenantID})

	claims, err := NewNoopVerifier().VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != testUserID || claims.TenantID != testTenantID {
		t.Errorf("unexpected claims: %+v", claims)
	}
}
