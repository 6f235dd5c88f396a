package blending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendSourcesOrdering(t *testing.T) {
	sources := []Source{
		{PlatformID: PlatformMetaAds, Data: []RawRow{
			{"date_start": "2024-01-16", "impressions": "100"},
		}},
		{PlatformID: PlatformGoogleAds, Data: []RawRow{
			{"date": "2024-01-15", "impressions": "200"},
		}},
	}

	rows, err := BlendSources(sources)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-15", rows[0][FieldDate])
	assert.Equal(t, PlatformGoogleAds, rows[0][FieldSourcePlatform])
	assert.Equal(t, "2024-01-16", rows[1][FieldDate])
	assert.Equal(t, PlatformMetaAds, rows[1][FieldSourcePlatform])
}

func TestBlendSourcesPlatformTieBreak(t *testing.T) {
	sources := []Source{
		{PlatformID: PlatformTikTokAds, Data: []RawRow{
			{"date": "2024-02-01", "impressions": "1"},
		}},
		{PlatformID: PlatformGoogleAds, Data: []RawRow{
			{"date": "2024-02-01", "impressions": "2"},
		}},
		{PlatformID: PlatformMetaAds, Data: []RawRow{
			{"date": "2024-02-01", "impressions": "3"},
		}},
	}

	rows, err := BlendSources(sources)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, PlatformGoogleAds, rows[0][FieldSourcePlatform])
	assert.Equal(t, PlatformMetaAds, rows[1][FieldSourcePlatform])
	assert.Equal(t, PlatformTikTokAds, rows[2][FieldSourcePlatform])
}

func TestBlendSourcesStableForEqualKeys(t *testing.T) {
	sources := []Source{
		{PlatformID: PlatformCustom, Data: []RawRow{
			{"date": "2024-02-01", "campaign": "first"},
			{"date": "2024-02-01", "campaign": "second"},
			{"date": "2024-02-01", "campaign": "third"},
		}},
	}

	rows, err := BlendSources(sources)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[0][FieldCampaignName])
	assert.Equal(t, "second", rows[1][FieldCampaignName])
	assert.Equal(t, "third", rows[2][FieldCampaignName])
}

func TestBlendSourcesSkipsEmpty(t *testing.T) {
	sources := []Source{
		{PlatformID: PlatformMetaAds, Data: []RawRow{}},
		{PlatformID: PlatformGoogleAds, Data: nil},
	}

	rows, err := BlendSources(sources)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBlendSourcesNoSources(t *testing.T) {
	rows, err := BlendSources(nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBlendSourcesUnknownPlatformFailsBeforeWork(t *testing.T) {
	sources := []Source{
		{PlatformID: PlatformMetaAds, Data: []RawRow{{"impressions": "1"}}},
		{PlatformID: "minidisc_ads", Data: []RawRow{{"impressions": "2"}}},
	}

	rows, err := BlendSources(sources)
	var upe *UnknownPlatformError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, "minidisc_ads", upe.Platform)
	assert.Nil(t, rows, "no partial output on configuration errors")
}

func TestBlendSourcesEmptyUnknownPlatformIsIgnored(t *testing.T) {
	// An unknown platform with no rows contributes nothing and is not a
	// configuration error worth failing the blend over.
	sources := []Source{
		{PlatformID: "minidisc_ads", Data: nil},
		{PlatformID: PlatformShopify, Data: []RawRow{
			{"day": "2024-01-10", "orders": "3", "total_sales": "149.97"},
		}},
	}

	rows, err := BlendSources(sources)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 149.97, rows[0][FieldRevenue])
}
