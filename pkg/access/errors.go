// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"errors"
)

// Rejection reasons for the authorization pipeline. All of them fail closed
// and none are retried.
var (
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrUserInactive         = errors.New("user is not active")
	ErrAccountTypeChanged   = errors.New("account type has been changed")
	ErrTenantInactive       = errors.New("tenant is not active")
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrSubscriptionExpired  = errors.New("subscription has been expired")
	ErrPermissionDenied     = errors.New("permission denied")

	// ErrDataIntegrity marks a cached or fetched payload that fails schema
	// validation. Surfaced to callers as a generic failure, details go to
	// logs only.
	ErrDataIntegrity = errors.New("payload failed schema validation")
)

// ClearsSession reports whether a rejection invalidates the session, in which
// case the client must be instructed to discard its session cookie.
func ClearsSession(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrUserInactive) ||
		errors.Is(err, ErrAccountTypeChanged) ||
		errors.Is(err, ErrTenantInactive)
}
