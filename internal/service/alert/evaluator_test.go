package alert

import (
	"context"
	"testing"
	"time"

	"github.com/ignite/adblend/internal/blending"
	"github.com/ignite/adblend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsWith(totals map[string]float64) blending.SummaryStats {
	return blending.SummaryStats{Totals: totals}
}

func TestEvaluateOperators(t *testing.T) {
	stats := statsWith(map[string]float64{"spend": 100})

	tests := []struct {
		name      string
		operator  string
		threshold float64
		want      bool
	}{
		{"gt above", domain.OpGreaterThan, 50, true},
		{"gt equal", domain.OpGreaterThan, 100, false},
		{"gte equal", domain.OpGreaterEqual, 100, true},
		{"lt below", domain.OpLessThan, 200, true},
		{"lt equal", domain.OpLessThan, 100, false},
		{"lte equal", domain.OpLessEqual, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Alert{ID: "a1", Name: "Spend watch", Metric: "spend", Operator: tt.operator, Threshold: tt.threshold}
			ev, err := Evaluate(a, stats)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.Triggered)
		})
	}
}

func TestEvaluateUnknownOperator(t *testing.T) {
	a := domain.Alert{Metric: "spend", Operator: "between"}
	_, err := Evaluate(a, statsWith(nil))
	require.Error(t, err)
}

func TestEvaluateMissingMetricIsZero(t *testing.T) {
	a := domain.Alert{Metric: "revenue", Operator: domain.OpLessThan, Threshold: 10}
	ev, err := Evaluate(a, statsWith(map[string]float64{"spend": 100}))
	require.NoError(t, err)
	assert.True(t, ev.Triggered)
	assert.Equal(t, 0.0, ev.Value)
}

func TestEvaluateTriggeredMessage(t *testing.T) {
	a := domain.Alert{ID: "a1", Name: "ROAS floor", Metric: "roas", Operator: domain.OpLessThan, Threshold: 2}
	ev, err := Evaluate(a, statsWith(map[string]float64{"roas": 1.5}))
	require.NoError(t, err)
	assert.True(t, ev.Triggered)
	assert.Contains(t, ev.Message, "ROAS floor")
	assert.Contains(t, ev.Message, "1.50")
}

type fakeRepo struct {
	alerts []domain.Alert
	fired  []string
}

func (f *fakeRepo) ListEnabledByWarehouse(ctx context.Context, warehouseID string) ([]domain.Alert, error) {
	return f.alerts, nil
}

func (f *fakeRepo) MarkFired(ctx context.Context, id string, at time.Time) error {
	f.fired = append(f.fired, id)
	return nil
}

func TestEvaluateWarehouse(t *testing.T) {
	repo := &fakeRepo{alerts: []domain.Alert{
		{ID: "a1", Name: "High spend", Metric: "spend", Operator: domain.OpGreaterThan, Threshold: 50},
		{ID: "a2", Name: "Low ctr", Metric: "ctr", Operator: domain.OpLessThan, Threshold: 0.5},
		{ID: "a3", Name: "Broken rule", Metric: "spend", Operator: "??"},
	}}
	svc := New(repo)

	evs, err := svc.EvaluateWarehouse(context.Background(),
		"wh-1", statsWith(map[string]float64{"spend": 100, "ctr": 2.0}))
	require.NoError(t, err)

	require.Len(t, evs, 2, "broken rule is skipped, not fatal")
	assert.True(t, evs[0].Triggered)
	assert.False(t, evs[1].Triggered)
	assert.Equal(t, []string{"a1"}, repo.fired)
}
