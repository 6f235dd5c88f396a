package blending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsMetrics(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 1000.0, FieldClicks: 40.0, FieldSpend: 25.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 2000.0, FieldClicks: 60.0, FieldSpend: 35.0},
	}

	out := AggregateData(rows, nil)
	require.Len(t, out, 1)

	agg := out[0]
	assert.Equal(t, "2024-01-15", agg[FieldDate])
	assert.Equal(t, PlatformMetaAds, agg[FieldSourcePlatform])
	assert.Equal(t, 3000.0, agg[FieldImpressions])
	assert.Equal(t, 100.0, agg[FieldClicks])
	assert.Equal(t, 60.0, agg[FieldSpend])
}

func TestAggregateRecomputesRatiosFromSums(t *testing.T) {
	// Row-level CTRs are 10% and 1%; the naive average (5.5%) is wrong.
	// The group ratio must come from summed clicks over summed impressions.
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 100.0, FieldClicks: 10.0, FieldSpend: 5.0, FieldCTR: 10.0, FieldCPC: 0.5},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 900.0, FieldClicks: 9.0, FieldSpend: 4.5, FieldCTR: 1.0, FieldCPC: 0.5},
	}

	out := AggregateData(rows, nil)
	require.Len(t, out, 1)

	assert.Equal(t, 1.9, out[0][FieldCTR])
	assert.Equal(t, 0.5, out[0][FieldCPC])
}

func TestAggregateByDateOnly(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 10000.0, FieldClicks: 500.0, FieldSpend: 250.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 5000.0, FieldClicks: 200.0, FieldSpend: 100.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformGoogleAds, FieldImpressions: 8000.0, FieldClicks: 400.0, FieldSpend: 200.0},
	}

	out := AggregateData(rows, []string{FieldDate})
	require.Len(t, out, 1)

	agg := out[0]
	assert.Equal(t, 23000.0, agg[FieldImpressions])
	assert.Equal(t, 550.0, agg[FieldSpend])
	// date-only grouping carries no platform on the aggregate row
	_, hasPlatform := agg[FieldSourcePlatform]
	assert.False(t, hasPlatform)
}

func TestAggregateSeparatesGroups(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 10.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformGoogleAds, FieldSpend: 20.0},
		{FieldDate: "2024-01-16", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 30.0},
	}

	out := AggregateData(rows, nil)
	require.Len(t, out, 3)

	// First-seen order is preserved.
	assert.Equal(t, 10.0, out[0][FieldSpend])
	assert.Equal(t, 20.0, out[1][FieldSpend])
	assert.Equal(t, 30.0, out[2][FieldSpend])
}

func TestAggregateMissingMetricCountsAsZero(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 100.0, FieldSpend: 5.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldImpressions: 200.0},
	}

	out := AggregateData(rows, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 300.0, out[0][FieldImpressions])
	assert.Equal(t, 5.0, out[0][FieldSpend], "absent spend contributes 0, row is not skipped")
}

func TestAggregateOmitsMetricsAbsentFromWholeGroup(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformShopify, FieldRevenue: 100.0, FieldOrders: 2.0},
	}

	out := AggregateData(rows, nil)
	require.Len(t, out, 1)
	_, hasImpressions := out[0][FieldImpressions]
	assert.False(t, hasImpressions, "impressions never appeared in the group")
	assert.Equal(t, 0.0, out[0][FieldCTR])
}

func TestAggregateMissingDimensionMergesIntoOneGroup(t *testing.T) {
	// Rows without a campaign_name all land in one group whose aggregate
	// row simply lacks the dimension. No "(none)" sentinel is invented.
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldCampaignName: "Brand", FieldSpend: 10.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 20.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 30.0},
	}

	out := AggregateData(rows, []string{FieldCampaignName})
	require.Len(t, out, 2)

	assert.Equal(t, "Brand", out[0][FieldCampaignName])
	assert.Equal(t, 10.0, out[0][FieldSpend])

	_, hasCampaign := out[1][FieldCampaignName]
	assert.False(t, hasCampaign)
	assert.Equal(t, 50.0, out[1][FieldSpend])
}

func TestAggregateUnmatchedGroupByYieldsSingleBucket(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 1.0},
		{FieldDate: "2024-01-16", FieldSourcePlatform: PlatformGoogleAds, FieldSpend: 2.0},
	}

	out := AggregateData(rows, []string{"no_such_dimension"})
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0][FieldSpend])
}

func TestAggregateRoundsFractionalMetrics(t *testing.T) {
	rows := []CanonicalRow{
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 0.1, FieldImpressions: 1.0},
		{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 0.2, FieldImpressions: 2.0},
	}

	out := AggregateData(rows, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 0.3, out[0][FieldSpend])
	assert.Equal(t, 3.0, out[0][FieldImpressions])
}

func TestAggregateEmptyInput(t *testing.T) {
	out := AggregateData(nil, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	row := CanonicalRow{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 1.5}
	rows := []CanonicalRow{row}

	AggregateData(rows, nil)

	assert.Equal(t, CanonicalRow{FieldDate: "2024-01-15", FieldSourcePlatform: PlatformMetaAds, FieldSpend: 1.5}, rows[0])
}
