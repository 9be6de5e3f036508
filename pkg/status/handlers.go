// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
	"github.com/canonical/access-service/internal/version"
)

type API struct {
	db    PingableInterface
	cache PingableInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	dependencies := map[string]bool{
		"database": true,
		"cache":    true,
	}

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database is unavailable: %v", err)
		dependencies["database"] = false
	}
	if err := a.cache.Ping(ctx); err != nil {
		a.logger.Errorf("cache is unavailable: %v", err)
		dependencies["cache"] = false
	}

	status := http.StatusOK
	message := "ok"
	for component, available := range dependencies {
		value := 1.0
		if !available {
			value = 0.0
			status = http.StatusServiceUnavailable
			message = "unavailable"
		}

		if err := a.monitor.SetDependencyAvailability(map[string]string{"component": component}, value); err != nil {
			a.logger.Errorf("failed to set availability metric: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       message,
		"dependencies": dependencies,
	})
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.version")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"version": version.Version,
	})
}

func NewAPI(db, cache PingableInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db
	a.cache = cache

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
