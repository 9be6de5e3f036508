// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/access-service/internal/logging"
	"github.com/canonical/access-service/internal/monitoring"
	"github.com/canonical/access-service/internal/tracing"
)

type API struct {
	middleware *Middleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.With(a.middleware.RequireAccess(EndpointMetadata{})).Get("/api/v0/me", a.handleMe)
}

// handleMe returns the identity context assembled for the current session.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		// RequireAccess always injects a principal, so this is a wiring fault.
		a.logger.Error("no principal in request context")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(principal); err != nil {
		a.logger.Errorf("failed to encode principal: %v", err)
	}
}

func NewAPI(middleware *Middleware, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		middleware: middleware,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
