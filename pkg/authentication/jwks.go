// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
)

// JWKSVerifier verifies session tokens against an issuer's published key set
// instead of a shared secret.
type JWKSVerifier struct {
	verifier *oidc.IDTokenVerifier

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWKSVerifier) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWKSVerifier.VerifyToken")
	defer span.End()

	if rawToken == "" {
		return nil, fmt.Errorf("no token provided")
	}

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		v.logger.Debugf("session token verification failed: %v", err)
		v.logger.Security().AuthnFailure("", "invalid session token")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims := new(Claims)
	if err := token.Claims(claims); err != nil {
		v.logger.Debugf("failed to extract claims: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if err := validateIdentityClaims(claims); err != nil {
		v.logger.Security().AuthnFailure(claims.UserID, "invalid identity claims")
		return nil, err
	}

	return claims, nil
}

func NewJWKSVerifier(
	provider ProviderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWKSVerifier {
	v := &JWKSVerifier{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}

	config := &oidc.Config{
		SkipClientIDCheck: true,
		SkipIssuerCheck:   false,
	}

	v.verifier = provider.Verifier(config)

	return v
}

func NewJWKSVerifierDirect(
	verifier *oidc.IDTokenVerifier,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWKSVerifier {
	return &JWKSVerifier{
		verifier: verifier,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
