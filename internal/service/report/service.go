// Package report runs the blend→aggregate→summarize pipeline for a
// warehouse, for both interactive previews and scheduled deliveries.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/adblend/internal/blending"
	"github.com/ignite/adblend/internal/domain"
	"github.com/ignite/adblend/internal/ingest"
	"github.com/ignite/adblend/internal/pkg/logger"
)

// WarehouseGetter is the slice of the warehouse repository this service
// needs.
type WarehouseGetter interface {
	Get(ctx context.Context, id string) (*domain.Warehouse, error)
}

// Service wires warehouse definitions and stored CSV objects into the
// blending engine.
type Service struct {
	warehouses WarehouseGetter
	store      ingest.ObjectStore
}

// New creates a report service.
func New(warehouses WarehouseGetter, store ingest.ObjectStore) *Service {
	return &Service{warehouses: warehouses, store: store}
}

// Request describes one pipeline run. StartDate/EndDate are inclusive
// YYYY-MM-DD bounds; either may be empty for an open end.
type Request struct {
	WarehouseID string   `json:"warehouse_id"`
	GroupBy     []string `json:"group_by"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

// Preview is the pipeline output handed to charts, KPI cards, and the
// delivery layer.
type Preview struct {
	Rows    []blending.CanonicalRow `json:"rows"`
	Summary blending.SummaryStats   `json:"summary"`
}

// Preview resolves the warehouse, fetches and parses every bound CSV
// object, and runs the full pipeline.
func (s *Service) Preview(ctx context.Context, req Request) (*Preview, error) {
	wh, err := s.warehouses.Get(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	sources := make([]blending.Source, 0, len(wh.Sources))
	for _, ws := range wh.Sources {
		rows, err := ingest.FetchRows(ctx, s.store, ws.ObjectKey)
		if err != nil {
			return nil, fmt.Errorf("warehouse %s source %s: %w", wh.ID, ws.PlatformID, err)
		}
		sources = append(sources, blending.Source{PlatformID: ws.PlatformID, Data: rows})
	}

	blended, err := blending.BlendSources(sources)
	if err != nil {
		return nil, err
	}
	blended = filterDateRange(blended, req.StartDate, req.EndDate)

	logger.Debug("pipeline run",
		"warehouse_id", wh.ID,
		"sources", len(sources),
		"rows", len(blended))

	return &Preview{
		Rows:    blending.AggregateData(blended, req.GroupBy),
		Summary: blending.Summarize(blended),
	}, nil
}

// PreviewInline runs the pipeline over caller-supplied raw sources, for
// the ad-hoc preview endpoint used by the report wizard.
func (s *Service) PreviewInline(sources []blending.Source, groupBy []string) (*Preview, error) {
	blended, err := blending.BlendSources(sources)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Rows:    blending.AggregateData(blended, groupBy),
		Summary: blending.Summarize(blended),
	}, nil
}

// filterDateRange keeps rows whose date falls inside the inclusive
// bounds. Undated rows survive only an unbounded filter; they belong to
// no day. Empty bounds leave that side open.
func filterDateRange(rows []blending.CanonicalRow, start, end string) []blending.CanonicalRow {
	if start == "" && end == "" {
		return rows
	}
	out := make([]blending.CanonicalRow, 0, len(rows))
	for _, row := range rows {
		d := blending.Dimension(row, blending.FieldDate)
		if d == "" {
			continue
		}
		if start != "" && d < start {
			continue
		}
		if end != "" && d > end {
			continue
		}
		out = append(out, row)
	}
	return out
}

// RangeForCadence resolves the date range a scheduled run covers: daily
// reports cover yesterday, weekly the seven days ending yesterday,
// monthly the previous calendar month.
func RangeForCadence(cadence string, now time.Time) (start, end string) {
	yesterday := now.AddDate(0, 0, -1)
	switch cadence {
	case domain.CadenceWeekly:
		return yesterday.AddDate(0, 0, -6).Format("2006-01-02"), yesterday.Format("2006-01-02")
	case domain.CadenceMonthly:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		firstOfLast := firstOfThis.AddDate(0, -1, 0)
		return firstOfLast.Format("2006-01-02"), firstOfThis.AddDate(0, 0, -1).Format("2006-01-02")
	default:
		d := yesterday.Format("2006-01-02")
		return d, d
	}
}

// NextRun returns when a report should run again after running at now.
func NextRun(cadence string, now time.Time) time.Time {
	switch cadence {
	case domain.CadenceWeekly:
		return now.AddDate(0, 0, 7)
	case domain.CadenceMonthly:
		return now.AddDate(0, 1, 0)
	default:
		return now.AddDate(0, 0, 1)
	}
}
