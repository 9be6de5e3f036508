// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
)

// NewVerifier initializes a session token verifier. A shared secret enables
// HMAC verification; otherwise an issuer (with optional manual JWKS URL) is
// required for key-set verification.
func NewVerifier(
	ctx context.Context,
	secret string,
	algorithm string,
	issuer string,
	jwksURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if secret != "" {
		logger.Infof("Session token verification is enabled with shared secret (%s)", algorithm)
		return NewSecretVerifier(secret, algorithm, tracer, monitor, logger), nil
	}

	if issuer == "" {
		return nil, fmt.Errorf("either a shared secret or an issuer is required for token verification")
	}

	if jwksURL != "" {
		logger.Infof("Using manual JWKS URL: %s", jwksURL)
		idTokenVerifier, err := NewProviderWithJWKS(ctx, issuer, jwksURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWKS verifier: %v", err)
		}
		logger.Info("Session token verification is enabled with manual JWKS URL")
		return NewJWKSVerifierDirect(idTokenVerifier, tracer, monitor, logger), nil
	}

	logger.Infof("Using OIDC discovery for issuer: %s", issuer)
	provider, err := NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}
	logger.Info("Session token verification is enabled with OIDC discovery")
	return NewJWKSVerifier(provider, tracer, monitor, logger), nil
}
