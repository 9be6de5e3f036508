// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/storage"
	"github.com/canonical/access-service/internal/tracing"
	"github.com/canonical/access-service/internal/types"
	"github.com/canonical/access-service/pkg/authentication"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	verifier authentication.TokenVerifierInterface
	storage  StorageInterface
	cache    CacheInterface

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authorize runs the pipeline stages strictly in sequence; the first failing
// stage is terminal and later collaborators are never touched.
func (s *Service) Authorize(ctx context.Context, rawToken string, meta EndpointMetadata) (*types.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.Authorize")
	defer span.End()

	claims, err := s.verifier.VerifyToken(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.userByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != types.StatusActive {
		s.logger.Security().SessionRevoked(user.ID, "user is not active")
		return nil, ErrUserInactive
	}

	// An account-type reassignment blanks account_type_id on non-owner rows
	// and must force a logout.
	if !user.IsAccountOwner && user.AccountTypeID == "" {
		s.logger.Security().SessionRevoked(user.ID, "account type has been changed")
		return nil, ErrAccountTypeChanged
	}

	tenant, err := s.tenantByID(ctx, claims.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Status != types.StatusActive {
		s.logger.Security().SessionRevoked(user.ID, "tenant is not active")
		return nil, ErrTenantInactive
	}

	// A workspace-active check will slot in here once workspaces land.

	history, err := s.subscriptionByTenantID(ctx, claims.TenantID)
	if err != nil {
		// A tenant that never subscribed has no history row; that is a
		// business rejection, not a lookup fault.
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		history = nil
	}
	if err := validateCurrentSubscription(history, time.Now()); err != nil {
		return nil, err
	}

	permissions, err := s.resolvePermissions(ctx, user)
	if err != nil {
		return nil, err
	}

	userAccountTypeID := user.AccountTypeID
	if user.IsAccountOwner {
		userAccountTypeID = ""
	}

	if err := authorizeEndpoint(permissions, meta); err != nil {
		s.logger.Security().AuthzFailure(user.ID, fmt.Sprintf("module=%s permission=%s", meta.Module, meta.Permission))
		return nil, err
	}

	return &types.Principal{
		UserID:                       user.ID,
		TenantID:                     tenant.ID,
		User:                         user,
		Tenant:                       tenant,
		UserAccountTypeID:            userAccountTypeID,
		AllowedModulesAndPermissions: permissions,
		UserPrimaryLanguage:          user.PrimaryLanguage,
		TenantDateFormat:             tenant.DateFormat,
		TenantTimeFormat:             tenant.TimeFormat,
		IsAccountOwner:               user.IsAccountOwner,
	}, nil
}

// authorizeEndpoint applies the matched route's metadata against the resolved
// permission set. Metadata-less endpoints are unrestricted.
func authorizeEndpoint(set types.PermissionSet, meta EndpointMetadata) error {
	if meta.Module == "" && meta.Permission == "" {
		return nil
	}

	// A permission requirement without its module is denied outright.
	if meta.Module == "" {
		return ErrPermissionDenied
	}

	module, ok := set[meta.Module]
	if !ok || !module.ModuleStatus {
		return ErrPermissionDenied
	}

	if meta.Permission != "" && !module.Permissions[meta.Permission] {
		return ErrPermissionDenied
	}

	return nil
}

func NewService(
	verifier authentication.TokenVerifierInterface,
	storage StorageInterface,
	cache CacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.verifier = verifier
	s.storage = storage
	s.cache = cache

	s.validate = validator.New()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
