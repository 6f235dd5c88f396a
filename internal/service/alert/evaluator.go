// Package alert evaluates metric alert rules against blended summary
// statistics.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/adblend/internal/blending"
	"github.com/ignite/adblend/internal/domain"
	"github.com/ignite/adblend/internal/pkg/logger"
)

// Evaluation is the outcome of checking one alert against one summary.
type Evaluation struct {
	AlertID   string  `json:"alert_id"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Operator  string  `json:"operator"`
	Triggered bool    `json:"triggered"`
	Message   string  `json:"message"`
}

// Evaluate checks one alert rule against summary totals. The metric may
// be any canonical metric, including the derived ctr/cpc/roas. A metric
// absent from the totals evaluates as 0, consistent with the engine's
// treatment of missing values.
func Evaluate(a domain.Alert, stats blending.SummaryStats) (Evaluation, error) {
	value := stats.Totals[a.Metric]

	var triggered bool
	switch a.Operator {
	case domain.OpGreaterThan:
		triggered = value > a.Threshold
	case domain.OpGreaterEqual:
		triggered = value >= a.Threshold
	case domain.OpLessThan:
		triggered = value < a.Threshold
	case domain.OpLessEqual:
		triggered = value <= a.Threshold
	default:
		return Evaluation{}, fmt.Errorf("unknown alert operator %q", a.Operator)
	}

	ev := Evaluation{
		AlertID:   a.ID,
		Metric:    a.Metric,
		Value:     value,
		Threshold: a.Threshold,
		Operator:  a.Operator,
		Triggered: triggered,
	}
	if triggered {
		ev.Message = fmt.Sprintf("%s: %s is %.2f (%s %.2f)",
			a.Name, a.Metric, value, a.Operator, a.Threshold)
	}
	return ev, nil
}

// Repo is the slice of the alert repository the service needs.
type Repo interface {
	ListEnabledByWarehouse(ctx context.Context, warehouseID string) ([]domain.Alert, error)
	MarkFired(ctx context.Context, id string, at time.Time) error
}

// Service evaluates all of a warehouse's alerts after a pipeline run.
type Service struct {
	alerts Repo
}

// New creates an alert service.
func New(alerts Repo) *Service { return &Service{alerts: alerts} }

// EvaluateWarehouse checks every enabled alert on the warehouse against
// the given summary and records firings. A rule with a bad operator is
// reported in the results but never aborts the rest.
func (s *Service) EvaluateWarehouse(ctx context.Context, warehouseID string, stats blending.SummaryStats) ([]Evaluation, error) {
	alerts, err := s.alerts.ListEnabledByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]Evaluation, 0, len(alerts))
	for _, a := range alerts {
		ev, err := Evaluate(a, stats)
		if err != nil {
			logger.Warn("skipping alert", "alert_id", a.ID, "error", err)
			continue
		}
		if ev.Triggered {
			if err := s.alerts.MarkFired(ctx, a.ID, now); err != nil {
				logger.Error("marking alert fired", "alert_id", a.ID, "error", err)
			}
		}
		out = append(out, ev)
	}
	return out, nil
}
