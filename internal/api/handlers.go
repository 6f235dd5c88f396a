// Package api exposes the platform over HTTP: CRUD for the five
// aggregates plus the interactive blend/preview endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/ignite/adblend/internal/blending"
	"github.com/ignite/adblend/internal/pkg/httputil"
	"github.com/ignite/adblend/internal/repository/postgres"
	"github.com/ignite/adblend/internal/service/alert"
	"github.com/ignite/adblend/internal/service/report"
)

// Handlers holds every repository and service the routes need.
type Handlers struct {
	clients    *postgres.ClientRepo
	sources    *postgres.SourceRepo
	warehouses *postgres.WarehouseRepo
	reports    *postgres.ReportRepo
	alerts     *postgres.AlertRepo

	reportSvc *report.Service
	alertSvc  *alert.Service

	startedAt time.Time
}

// NewHandlers wires repos and services into a handler set.
func NewHandlers(
	clients *postgres.ClientRepo,
	sources *postgres.SourceRepo,
	warehouses *postgres.WarehouseRepo,
	reports *postgres.ReportRepo,
	alerts *postgres.AlertRepo,
	reportSvc *report.Service,
	alertSvc *alert.Service,
) *Handlers {
	return &Handlers{
		clients:    clients,
		sources:    sources,
		warehouses: warehouses,
		reports:    reports,
		alerts:     alerts,
		reportSvc:  reportSvc,
		alertSvc:   alertSvc,
		startedAt:  time.Now().UTC(),
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// ListPlatforms returns the platforms with a registered field mapping.
func (h *Handlers) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{"platforms": blending.Platforms()})
}

// ListColumns returns the canonical column registry.
func (h *Handlers) ListColumns(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{"columns": blending.Columns()})
}
