// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
)

// SecretVerifier verifies session tokens signed with a process-wide shared
// secret. Only the configured algorithm is accepted.
type SecretVerifier struct {
	secret    []byte
	algorithm string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *SecretVerifier) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	_, span := v.tracer.Start(ctx, "authentication.SecretVerifier.VerifyToken")
	defer span.End()

	if rawToken == "" {
		return nil, fmt.Errorf("no token provided")
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{v.algorithm}),
	)
	if err != nil {
		v.logger.Debugf("session token verification failed: %v", err)
		v.logger.Security().AuthnFailure("", "invalid session token")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if err := validateIdentityClaims(claims); err != nil {
		v.logger.Security().AuthnFailure(claims.UserID, "invalid identity claims")
		return nil, err
	}

	return claims, nil
}

// validateIdentityClaims enforces the token invariant: user_id and tenant_id
// present, non-empty and well-formed UUIDs.
func validateIdentityClaims(claims *Claims) error {
	if claims.UserID == "" || claims.TenantID == "" {
		return fmt.Errorf("invalid token: missing identity claims")
	}

	if uuid.Validate(claims.UserID) != nil || uuid.Validate(claims.TenantID) != nil {
		return fmt.Errorf("invalid token: malformed identity claims")
	}

	return nil
}

func NewSecretVerifier(
	secret string,
	algorithm string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *SecretVerifier {
	return &SecretVerifier{
		secret:    []byte(secret),
		algorithm: algorithm,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}
