// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"fmt"
	"strconv"
	"time"

	"github.com/canonical/access-service/internal/types"
)

// validateCurrentSubscription checks the temporal validity of the tenant's
// current subscription term. The comparison is date-only in UTC: a term ending
// earlier today is still valid through the end of that day. The stored status
// flag and start_timestamp are not consulted here.
func validateCurrentSubscription(history *types.SubscriptionHistory, now time.Time) error {
	if history == nil {
		return ErrNoActiveSubscription
	}

	seconds, err := strconv.ParseInt(history.EndTimestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad end_timestamp %q", ErrDataIntegrity, history.EndTimestamp)
	}

	if truncateToDate(time.Unix(seconds, 0)).Before(truncateToDate(now)) {
		return ErrSubscriptionExpired
	}

	return nil
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
