// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound = errors.New("resource not found")
)
