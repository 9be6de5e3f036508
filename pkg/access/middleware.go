// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
)

const (
	// CookieName is the session cookie carrying the signed token.
	CookieName = "access_token"
	// TokenMetadataKey is the gRPC metadata key carrying the signed token.
	TokenMetadataKey = "x-access-token"
)

type Middleware struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RequireAccess runs the authorization pipeline for every request, enforcing
// the given endpoint metadata, and injects the resulting identity context.
func (m *Middleware) RequireAccess(meta EndpointMetadata) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "access.Middleware.RequireAccess")
			defer span.End()

			var rawToken string
			if cookie, err := r.Cookie(CookieName); err == nil {
				rawToken = cookie.Value
			}

			principal, err := m.service.Authorize(ctx, rawToken, meta)
			if err != nil {
				m.rejectResponse(w, err)
				return
			}

			ctx = WithPrincipal(ctx, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GRPCInterceptor applies the pipeline to unary gRPC calls, with per-method
// endpoint metadata keyed by full method name.
func (m *Middleware) GRPCInterceptor(methods map[string]EndpointMetadata) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, span := m.tracer.Start(ctx, "access.Middleware.GRPCInterceptor")
		defer span.End()

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, grpcstatus.Error(codes.Unauthenticated, "metadata is not provided")
		}

		var rawToken string
		if values := md.Get(TokenMetadataKey); len(values) > 0 {
			rawToken = values[0]
		}

		principal, err := m.service.Authorize(ctx, rawToken, methods[info.FullMethod])
		if err != nil {
			switch {
			case errors.Is(err, ErrUnauthenticated):
				return nil, grpcstatus.Error(codes.Unauthenticated, err.Error())
			case isRejection(err):
				return nil, grpcstatus.Error(codes.PermissionDenied, err.Error())
			default:
				m.logger.Errorf("authorization pipeline failure: %v", err)
				return nil, grpcstatus.Error(codes.Internal, "internal server error")
			}
		}

		return handler(WithPrincipal(ctx, principal), req)
	}
}

func (m *Middleware) rejectResponse(w http.ResponseWriter, err error) {
	if ClearsSession(err) {
		clearSessionCookie(w)
	}

	status := http.StatusForbidden
	message := err.Error()

	switch {
	case errors.Is(err, ErrUnauthenticated):
		status = http.StatusUnauthorized
	case isRejection(err):
		status = http.StatusForbidden
	default:
		// Lookup misses and integrity faults are not leaked to the client.
		m.logger.Errorf("authorization pipeline failure: %v", err)
		status = http.StatusInternalServerError
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		m.logger.Errorf("failed to encode rejection response: %v", err)
	}
}

// isRejection distinguishes business rejections from internal pipeline faults.
func isRejection(err error) bool {
	for _, target := range []error{
		ErrUnauthenticated,
		ErrUserInactive,
		ErrAccountTypeChanged,
		ErrTenantInactive,
		ErrNoActiveSubscription,
		ErrSubscriptionExpired,
		ErrPermissionDenied,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// clearSessionCookie instructs the client to discard its session: empty
// value, zero max-age, HTTP-only, secure, cross-site none.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func NewMiddleware(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
