// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"errors"
	"testing"

	"github.com/canonical/access-service/internal/types"
)

func TestBuildPermissionSet(t *testing.T) {
	set := buildPermissionSet([]types.ModuleDefinition{
		{
			Slug:      "billing",
			IsChecked: true,
			Permissions: []types.PermissionDefinition{
				{Name: "view", IsChecked: true},
				{Name: "edit", IsChecked: false},
			},
		},
		{
			Slug:      "reports",
			IsChecked: false,
			Permissions: []types.PermissionDefinition{
				{Name: "view", IsChecked: true},
			},
		},
		{
			Slug:        "inventory",
			IsChecked:   true,
			Permissions: nil,
		},
	})

	if len(set) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(set))
	}
	if !set["billing"].ModuleStatus || !set["billing"].Permissions["view"] {
		t.Error("expected billing view to be allowed")
	}
	if set["billing"].Permissions["edit"] {
		t.Error("expected billing edit to be denied")
	}
	// A checked permission under an unchecked module must stay denied.
	if set["reports"].ModuleStatus || set["reports"].Permissions["view"] {
		t.Error("expected the disabled reports module to deny everything")
	}
	if !set["inventory"].ModuleStatus {
		t.Error("expected inventory module to be enabled")
	}
	if len(set["inventory"].Permissions) != 0 {
		t.Errorf("expected no inventory permissions, got %v", set["inventory"].Permissions)
	}
}

func TestAuthorizeEndpoint(t *testing.T) {
	set := types.PermissionSet{
		"billing": {
			ModuleStatus: true,
			Permissions:  map[string]bool{"view": true, "edit": false},
		},
		"reports": {
			ModuleStatus: false,
			Permissions:  map[string]bool{"view": false},
		},
	}

	testCases := []struct {
		name        string
		meta        EndpointMetadata
		expectedErr error
	}{
		{
			name:        "no metadata",
			meta:        EndpointMetadata{},
			expectedErr: nil,
		},
		{
			name:        "module only",
			meta:        EndpointMetadata{Module: "billing"},
			expectedErr: nil,
		},
		{
			name:        "module and allowed permission",
			meta:        EndpointMetadata{Module: "billing", Permission: "view"},
			expectedErr: nil,
		},
		{
			name:        "module and denied permission",
			meta:        EndpointMetadata{Module: "billing", Permission: "edit"},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:        "permission without module",
			meta:        EndpointMetadata{Permission: "view"},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:        "unknown module",
			meta:        EndpointMetadata{Module: "payroll"},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:        "disabled module",
			meta:        EndpointMetadata{Module: "reports", Permission: "view"},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:        "unknown permission on an enabled module",
			meta:        EndpointMetadata{Module: "billing", Permission: "export"},
			expectedErr: ErrPermissionDenied,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := authorizeEndpoint(set, tc.meta)
			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}
