// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/tracing"
	"github.com/canonical/access-service/internal/types"
)

func newTestMiddleware(service ServiceInterface) *Middleware {
	return NewMiddleware(
		service,
		tracing.NewTracer(tracing.NewNoopConfig()),
		nil,
		logging.NewNoopLogger(),
	)
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: CookieName, Value: value}
}

func TestMiddleware_RequireAccess(t *testing.T) {
	principal := &types.Principal{UserID: testUserID, TenantID: testTenantID}
	meta := EndpointMetadata{Module: "billing", Permission: "view"}

	tests := []struct {
		name               string
		cookie             *http.Cookie
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
		expectCleared      bool
	}{
		{
			name:   "authorized request reaches the handler",
			cookie: sessionCookie(testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, meta).Return(principal, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:   "missing cookie is authorized as an empty token",
			cookie: nil,
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), "", meta).Return(nil, fmt.Errorf("%w: token is empty", ErrUnauthenticated))
			},
			expectedStatusCode: http.StatusUnauthorized,
			expectCleared:      true,
		},
		{
			name:   "inactive user clears the session",
			cookie: sessionCookie(testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, meta).Return(nil, ErrUserInactive)
			},
			expectedStatusCode: http.StatusForbidden,
			expectCleared:      true,
		},
		{
			name:   "expired subscription keeps the session",
			cookie: sessionCookie(testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, meta).Return(nil, ErrSubscriptionExpired)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:   "permission denied keeps the session",
			cookie: sessionCookie(testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, meta).Return(nil, ErrPermissionDenied)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:   "pipeline fault maps to an opaque internal error",
			cookie: sessionCookie(testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, meta).Return(nil, errors.New("connection refused"))
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			middleware := newTestMiddleware(mockService)

			var injected *types.Principal
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				injected, _ = PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()

			middleware.RequireAccess(meta)(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			if tt.expectedStatusCode == http.StatusOK {
				if injected == nil || injected.UserID != testUserID {
					t.Errorf("expected principal in handler context, got %+v", injected)
				}
				return
			}

			cleared := false
			for _, cookie := range rr.Result().Cookies() {
				if cookie.Name == CookieName {
					if cookie.Value != "" || cookie.MaxAge >= 0 {
						t.Errorf("expected an expiring empty cookie, got %+v", cookie)
					}
					if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
						t.Errorf("unexpected cookie attributes: %+v", cookie)
					}
					cleared = true
				}
			}
			if cleared != tt.expectCleared {
				t.Errorf("expected cleared=%v, got %v", tt.expectCleared, cleared)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("rejection body is not JSON: %v", err)
			}
			if tt.expectedStatusCode == http.StatusInternalServerError && body["message"] != "internal server error" {
				t.Errorf("expected opaque message, got %q", body["message"])
			}
		})
	}
}

func TestMiddleware_GRPCInterceptor(t *testing.T) {
	methods := map[string]EndpointMetadata{
		"/billing.BillingService/GetInvoice": {Module: "billing", Permission: "view"},
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/billing.BillingService/GetInvoice"}

	tests := []struct {
		name         string
		md           metadata.MD
		setupMocks   func(*MockServiceInterface)
		expectedCode codes.Code
	}{
		{
			name: "authorized call",
			md:   metadata.Pairs(TokenMetadataKey, testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, methods[info.FullMethod]).
					Return(&types.Principal{UserID: testUserID}, nil)
			},
			expectedCode: codes.OK,
		},
		{
			name: "missing token",
			md:   metadata.MD{},
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), "", methods[info.FullMethod]).
					Return(nil, ErrUnauthenticated)
			},
			expectedCode: codes.Unauthenticated,
		},
		{
			name: "permission denied",
			md:   metadata.Pairs(TokenMetadataKey, testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, methods[info.FullMethod]).
					Return(nil, ErrPermissionDenied)
			},
			expectedCode: codes.PermissionDenied,
		},
		{
			name: "pipeline fault",
			md:   metadata.Pairs(TokenMetadataKey, testToken),
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Authorize(gomock.Any(), testToken, methods[info.FullMethod]).
					Return(nil, errors.New("connection refused"))
			},
			expectedCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			middleware := newTestMiddleware(mockService)
			interceptor := middleware.GRPCInterceptor(methods)

			ctx := metadata.NewIncomingContext(context.Background(), tt.md)
			var injected *types.Principal
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				injected, _ = PrincipalFromContext(ctx)
				return "ok", nil
			}

			resp, err := interceptor(ctx, nil, info, handler)

			if tt.expectedCode == codes.OK {
				if err != nil {
					t.Fatalf("expected call to pass, got %v", err)
				}
				if resp != "ok" || injected == nil || injected.UserID != testUserID {
					t.Errorf("expected principal-bearing context, got %+v", injected)
				}
				return
			}

			if grpcstatus.Code(err) != tt.expectedCode {
				t.Errorf("expected code %v, got %v", tt.expectedCode, grpcstatus.Code(err))
			}
		})
	}
}

func TestAPI_HandleMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	principal := &types.Principal{
		UserID:         testUserID,
		TenantID:       testTenantID,
		IsAccountOwner: true,
		AllowedModulesAndPermissions: types.PermissionSet{
			"billing": {ModuleStatus: true, Permissions: map[string]bool{"view": true}},
		},
	}

	mockService := NewMockServiceInterface(ctrl)
	mockService.EXPECT().Authorize(gomock.Any(), testToken, EndpointMetadata{}).Return(principal, nil)

	tracer := tracing.NewTracer(tracing.NewNoopConfig())
	logger := logging.NewNoopLogger()
	middleware := NewMiddleware(mockService, tracer, nil, logger)
	api := NewAPI(middleware, tracer, nil, logger)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
	req.AddCookie(sessionCookie(testToken))
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got types.Principal
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.UserID != testUserID || !got.IsAccountOwner {
		t.Errorf("unexpected principal: %+v", got)
	}
	if !got.AllowedModulesAndPermissions["billing"].Permissions["view"] {
		t.Error("expected billing view permission in response")
	}
}
