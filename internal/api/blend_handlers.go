package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/adblend/internal/blending"
	"github.com/ignite/adblend/internal/pkg/httputil"
	"github.com/ignite/adblend/internal/service/alert"
	"github.com/ignite/adblend/internal/service/report"
)

// BlendPreviewRequest carries inline source data for an ad-hoc blend,
// the way the dashboard's "try it" panel submits uploads it has parsed
// client-side.
type BlendPreviewRequest struct {
	Sources []blending.Source `json:"sources"`
	GroupBy []string          `json:"group_by"`
}

// BlendPreview blends inline sources and returns aggregated rows plus
// summary statistics.
func (h *Handlers) BlendPreview(w http.ResponseWriter, r *http.Request) {
	var req BlendPreviewRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if len(req.Sources) == 0 {
		httputil.BadRequest(w, "at least one source is required")
		return
	}

	preview, err := h.reportSvc.PreviewInline(req.Sources, req.GroupBy)
	if err != nil {
		var upe *blending.UnknownPlatformError
		if errors.As(err, &upe) {
			httputil.BadRequest(w, upe.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, preview)
}

// PreviewWarehouse runs the pipeline over a warehouse's stored objects.
func (h *Handlers) PreviewWarehouse(w http.ResponseWriter, r *http.Request) {
	var req report.Request
	if !httputil.Decode(w, r, &req) {
		return
	}
	req.WarehouseID = chi.URLParam(r, "warehouseID")

	preview, err := h.reportSvc.Preview(r.Context(), req)
	if err != nil {
		h.respondPipelineErr(w, err)
		return
	}
	httputil.OK(w, preview)
}

// PreviewReport runs a saved report's pipeline over its cadence window
// without recording a run.
func (h *Handlers) PreviewReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Get(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		respondErr(w, err)
		return
	}

	start, end := report.RangeForCadence(rep.Cadence, time.Now().UTC())
	preview, err := h.reportSvc.Preview(r.Context(), report.Request{
		WarehouseID: rep.WarehouseID,
		GroupBy:     rep.GroupBy,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		h.respondPipelineErr(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"report":     rep,
		"start_date": start,
		"end_date":   end,
		"preview":    preview,
	})
}

// EvaluateAlert runs the pipeline over the alert's warehouse and checks
// the rule. A triggered evaluation records the firing.
func (h *Handlers) EvaluateAlert(w http.ResponseWriter, r *http.Request) {
	a, err := h.alerts.Get(r.Context(), chi.URLParam(r, "alertID"))
	if err != nil {
		respondErr(w, err)
		return
	}

	var req report.Request
	if r.ContentLength > 0 && !httputil.Decode(w, r, &req) {
		return
	}
	req.WarehouseID = a.WarehouseID

	preview, err := h.reportSvc.Preview(r.Context(), req)
	if err != nil {
		h.respondPipelineErr(w, err)
		return
	}

	ev, err := alert.Evaluate(*a, preview.Summary)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if ev.Triggered {
		if err := h.alerts.MarkFired(r.Context(), a.ID, time.Now().UTC()); err != nil {
			httputil.InternalError(w, err)
			return
		}
	}
	httputil.OK(w, ev)
}

func (h *Handlers) respondPipelineErr(w http.ResponseWriter, err error) {
	var upe *blending.UnknownPlatformError
	if errors.As(err, &upe) {
		httputil.BadRequest(w, upe.Error())
		return
	}
	respondErr(w, err)
}
