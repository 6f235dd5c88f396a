package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/adblend/internal/blending"
	"github.com/ignite/adblend/internal/domain"
	"github.com/ignite/adblend/internal/pkg/httputil"
	"github.com/ignite/adblend/internal/repository/postgres"
)

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, postgres.ErrNotFound) {
		httputil.NotFound(w, "not found")
		return
	}
	httputil.InternalError(w, err)
}

// ---- Clients ----

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{"clients": clients})
}

func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	var c domain.Client
	if !httputil.Decode(w, r, &c) {
		return
	}
	if c.Name == "" {
		httputil.BadRequest(w, "name is required")
		return
	}
	id, err := h.clients.Create(r.Context(), &c)
	if err != nil {
		respondErr(w, err)
		return
	}
	c.ID = id
	httputil.Created(w, c)
}

func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.clients.Get(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, c)
}

func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var c domain.Client
	if !httputil.Decode(w, r, &c) {
		return
	}
	c.ID = chi.URLParam(r, "clientID")
	if err := h.clients.Update(r.Context(), &c); err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, c)
}

func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.clients.Delete(r.Context(), chi.URLParam(r, "clientID")); err != nil {
		respondErr(w, err)
		return
	}
	httputil.NoContent(w)
}

func (h *Handlers) ListClientSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.sources.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{"sources": sources})
}

func (h *Handlers) ListClientWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.warehouses.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{"warehouses": warehouses})
}

func (h *Handlers) ListClientReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{"reports": reports})
}

func (h *Handlers) ListClientAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{"alerts": alerts})
}

// ---- Data sources ----

func (h *Handlers) CreateSource(w http.ResponseWriter, r *http.Request) {
	var s domain.DataSource
	if !httputil.Decode(w, r, &s) {
		return
	}
	if s.ClientID == "" {
		httputil.BadRequest(w, "client_id is required")
		return
	}
	if _, err := blending.MappingFor(s.PlatformID); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	id, err := h.sources.Create(r.Context(), &s)
	if err != nil {
		respondErr(w, err)
		return
	}
	s.ID = id
	httputil.Created(w, s)
}

func (h *Handlers) GetSource(w http.ResponseWriter, r *http.Request) {
	s, err := h.sources.Get(r.Context(), chi.URLParam(r, "sourceID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, s)
}

func (h *Handlers) DeleteSource(w http.ResponseWriter, r *http.Request) {
	if err := h.sources.Delete(r.Context(), chi.URLParam(r, "sourceID")); err != nil {
		respondErr(w, err)
		return
	}
	httputil.NoContent(w)
}

func (h *Handlers) MarkSourceSynced(w http.ResponseWriter, r *http.Request) {
	if err := h.sources.MarkSynced(r.Context(), chi.URLParam(r, "sourceID")); err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{"status": "synced"})
}

// ---- Warehouses ----

func (h *Handlers) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var wh domain.Warehouse
	if !httputil.Decode(w, r, &wh) {
		return
	}
	if wh.ClientID == "" {
		httputil.BadRequest(w, "client_id is required")
		return
	}
	for _, src := range wh.Sources {
		if _, err := blending.MappingFor(src.PlatformID); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
	}
	id, err := h.warehouses.Create(r.Context(), &wh)
	if err != nil {
		respondErr(w, err)
		return
	}
	wh.ID = id
	httputil.Created(w, wh)
}

func (h *Handlers) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	wh, err := h.warehouses.Get(r.Context(), chi.URLParam(r, "warehouseID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, wh)
}

func (h *Handlers) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	var wh domain.Warehouse
	if !httputil.Decode(w, r, &wh) {
		return
	}
	wh.ID = chi.URLParam(r, "warehouseID")
	for _, src := range wh.Sources {
		if _, err := blending.MappingFor(src.PlatformID); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
	}
	if err := h.warehouses.Update(r.Context(), &wh); err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, wh)
}

func (h *Handlers) DeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	if err := h.warehouses.Delete(r.Context(), chi.URLParam(r, "warehouseID")); err != nil {
		respondErr(w, err)
		return
	}
	httputil.NoContent(w)
}

// ---- Reports ----

func (h *Handlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	var rep domain.Report
	if !httputil.Decode(w, r, &rep) {
		return
	}
	if rep.WarehouseID == "" {
		httputil.BadRequest(w, "warehouse_id is required")
		return
	}
	switch rep.Cadence {
	case domain.CadenceDaily, domain.CadenceWeekly, domain.CadenceMonthly:
	default:
		httputil.BadRequest(w, "cadence must be daily, weekly, or monthly")
		return
	}
	id, err := h.reports.Create(r.Context(), &rep)
	if err != nil {
		respondErr(w, err)
		return
	}
	rep.ID = id
	httputil.Created(w, rep)
}

func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Get(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, rep)
}

func (h *Handlers) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var rep domain.Report
	if !httputil.Decode(w, r, &rep) {
		return
	}
	rep.ID = chi.URLParam(r, "reportID")
	if err := h.reports.Update(r.Context(), &rep); err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, rep)
}

func (h *Handlers) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.Delete(r.Context(), chi.URLParam(r, "reportID")); err != nil {
		respondErr(w, err)
		return
	}
	httputil.NoContent(w)
}

// ---- Alerts ----

func (h *Handlers) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var a domain.Alert
	if !httputil.Decode(w, r, &a) {
		return
	}
	if a.WarehouseID == "" {
		httputil.BadRequest(w, "warehouse_id is required")
		return
	}
	switch a.Operator {
	case domain.OpGreaterThan, domain.OpGreaterEqual, domain.OpLessThan, domain.OpLessEqual:
	default:
		httputil.BadRequest(w, "operator must be gt, gte, lt, or lte")
		return
	}
	if col, ok := blending.LookupColumn(a.Metric); !ok || col.Type != blending.ColumnMetric {
		httputil.BadRequest(w, "unknown metric "+a.Metric)
		return
	}
	id, err := h.alerts.Create(r.Context(), &a)
	if err != nil {
		respondErr(w, err)
		return
	}
	a.ID = id
	httputil.Created(w, a)
}

func (h *Handlers) GetAlert(w http.ResponseWriter, r *http.Request) {
	a, err := h.alerts.Get(r.Context(), chi.URLParam(r, "alertID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httputil.OK(w, a)
}

func (h *Handlers) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.alerts.Delete(r.Context(), chi.URLParam(r, "alertID")); err != nil {
		respondErr(w, err)
		return
	}
	httputil.NoContent(w)
}
