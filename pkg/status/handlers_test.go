// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/tracing"
	"github.com/canonical/access-service/internal/version"
)

type stubPingable struct {
	err error
}

func (s *stubPingable) Ping(_ context.Context) error {
	return s.err
}

type stubMonitor struct {
	availability map[string]float64
}

func (s *stubMonitor) GetService() string {
	return "access-service"
}

func (s *stubMonitor) SetResponseTimeMetric(map[string]string, float64) error {
	return nil
}

func (s *stubMonitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if s.availability == nil {
		s.availability = make(map[string]float64)
	}
	s.availability[tags["component"]] = value
	return nil
}

func TestAPI_Alive(t *testing.T) {
	tests := []struct {
		name               string
		dbErr              error
		cacheErr           error
		expectedStatusCode int
	}{
		{
			name:               "all dependencies available",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "database unavailable",
			dbErr:              errors.New("connection refused"),
			expectedStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:               "cache unavailable",
			cacheErr:           errors.New("connection refused"),
			expectedStatusCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitor := new(stubMonitor)
			api := NewAPI(
				&stubPingable{err: tt.dbErr},
				&stubPingable{err: tt.cacheErr},
				tracing.NewTracer(tracing.NewNoopConfig()),
				monitor,
				logging.NewNoopLogger(),
			)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			expectedDB := 1.0
			if tt.dbErr != nil {
				expectedDB = 0.0
			}
			if monitor.availability["database"] != expectedDB {
				t.Errorf("expected database availability %v, got %v", expectedDB, monitor.availability["database"])
			}
		})
	}
}

func TestAPI_Version(t *testing.T) {
	api := NewAPI(
		new(stubPingable),
		new(stubPingable),
		tracing.NewTracer(tracing.NewNoopConfig()),
		new(stubMonitor),
		logging.NewNoopLogger(),
	)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["version"] != version.Version {
		t.Errorf("expected version %q, got %q", version.Version, body["version"])
	}
}
