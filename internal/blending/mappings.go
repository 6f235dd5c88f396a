package blending

import (
	"fmt"
	"sort"
)

// Transform tags how a raw value is converted while harmonizing.
type Transform int

const (
	// TransformNone passes strings through trimmed. Date-named targets are
	// additionally run through NormalizeDate.
	TransformNone Transform = iota
	// TransformNumeric parses the value with ParseNumeric.
	TransformNumeric
	// TransformDate normalizes the value to YYYY-MM-DD.
	TransformDate
	// TransformMicros parses the value as a number and divides by 1e6
	// (Google Ads cost_micros style currency).
	TransformMicros
)

// FieldMapping maps one native platform field to a canonical column.
type FieldMapping struct {
	Source    string
	Target    string
	Transform Transform
}

// UnknownPlatformError is returned when harmonization is requested for a
// platform with no registered mapping table. It is a configuration error:
// nothing sensible can be done with the rows.
type UnknownPlatformError struct {
	Platform string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("no field mapping registered for platform %q", e.Platform)
}

// Supported platform identifiers.
const (
	PlatformMetaAds   = "meta_ads"
	PlatformGoogleAds = "google_ads"
	PlatformTikTokAds = "tiktok_ads"
	PlatformGA4       = "ga4"
	PlatformShopify   = "shopify"
	PlatformCustom    = "custom"
)

// platformMappings is authored configuration: adding a platform is a pure
// data change, no harmonizer code is involved. Loaded once, never mutated,
// safe to share across goroutines.
var platformMappings = map[string][]FieldMapping{
	PlatformMetaAds: {
		{Source: "date_start", Target: FieldDate, Transform: TransformDate},
		{Source: "date", Target: FieldDate, Transform: TransformDate},
		{Source: "campaign_name", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "adset_name", Target: FieldAdsetName, Transform: TransformNone},
		{Source: "ad_name", Target: FieldAdName, Transform: TransformNone},
		{Source: "impressions", Target: FieldImpressions, Transform: TransformNumeric},
		{Source: "link_clicks", Target: FieldClicks, Transform: TransformNumeric},
		{Source: "clicks", Target: FieldClicks, Transform: TransformNumeric},
		{Source: "spend", Target: FieldSpend, Transform: TransformNumeric},
		{Source: "conversions", Target: FieldConversions, Transform: TransformNumeric},
		{Source: "purchase_value", Target: FieldRevenue, Transform: TransformNumeric},
	},
	PlatformGoogleAds: {
		{Source: "date", Target: FieldDate, Transform: TransformDate},
		{Source: "segments.date", Target: FieldDate, Transform: TransformDate},
		{Source: "campaign", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "campaign_name", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "ad_group", Target: FieldAdsetName, Transform: TransformNone},
		{Source: "impressions", Target: FieldImpressions, Transform: TransformNumeric},
		{Source: "clicks", Target: FieldClicks, Transform: TransformNumeric},
		{Source: "cost_micros", Target: FieldSpend, Transform: TransformMicros},
		{Source: "cost", Target: FieldSpend, Transform: TransformNumeric},
		{Source: "conversions", Target: FieldConversions, Transform: TransformNumeric},
		{Source: "conversions_value", Target: FieldRevenue, Transform: TransformNumeric},
	},
	PlatformTikTokAds: {
		{Source: "stat_time_day", Target: FieldDate, Transform: TransformDate},
		{Source: "date", Target: FieldDate, Transform: TransformDate},
		{Source: "campaign_name", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "adgroup_name", Target: FieldAdsetName, Transform: TransformNone},
		{Source: "ad_name", Target: FieldAdName, Transform: TransformNone},
		{Source: "impressions", Target: FieldImpressions, Transform: TransformNumeric},
		{Source: "clicks", Target: FieldClicks, Transform: TransformNumeric},
		{Source: "spend", Target: FieldSpend, Transform: TransformNumeric},
		{Source: "conversions", Target: FieldConversions, Transform: TransformNumeric},
		{Source: "total_purchase_value", Target: FieldRevenue, Transform: TransformNumeric},
	},
	PlatformGA4: {
		// GA4 exports dates as YYYYMMDD.
		{Source: "date", Target: FieldDate, Transform: TransformDate},
		{Source: "sessionCampaignName", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "campaign", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "sessions", Target: FieldSessions, Transform: TransformNumeric},
		{Source: "totalUsers", Target: FieldUsers, Transform: TransformNumeric},
		{Source: "users", Target: FieldUsers, Transform: TransformNumeric},
		{Source: "conversions", Target: FieldConversions, Transform: TransformNumeric},
		{Source: "purchaseRevenue", Target: FieldRevenue, Transform: TransformNumeric},
	},
	PlatformShopify: {
		{Source: "day", Target: FieldDate, Transform: TransformDate},
		{Source: "date", Target: FieldDate, Transform: TransformDate},
		{Source: "orders", Target: FieldOrders, Transform: TransformNumeric},
		{Source: "total_orders", Target: FieldOrders, Transform: TransformNumeric},
		{Source: "total_sales", Target: FieldRevenue, Transform: TransformNumeric},
		{Source: "net_sales", Target: FieldRevenue, Transform: TransformNumeric},
		{Source: "sessions", Target: FieldSessions, Transform: TransformNumeric},
	},
	PlatformCustom: {
		{Source: "date", Target: FieldDate, Transform: TransformDate},
		{Source: "campaign", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "campaign_name", Target: FieldCampaignName, Transform: TransformNone},
		{Source: "impressions", Target: FieldImpressions, Transform: TransformNumeric},
		{Source: "clicks", Target: FieldClicks, Transform: TransformNumeric},
		{Source: "spend", Target: FieldSpend, Transform: TransformNumeric},
		{Source: "cost", Target: FieldSpend, Transform: TransformNumeric},
		{Source: "conversions", Target: FieldConversions, Transform: TransformNumeric},
		{Source: "revenue", Target: FieldRevenue, Transform: TransformNumeric},
	},
}

// MappingFor returns the mapping table for a platform, or an
// *UnknownPlatformError if none is registered.
func MappingFor(platformID string) ([]FieldMapping, error) {
	m, ok := platformMappings[platformID]
	if !ok {
		return nil, &UnknownPlatformError{Platform: platformID}
	}
	return m, nil
}

// Platforms returns the sorted list of platform identifiers with a
// registered mapping table.
func Platforms() []string {
	out := make([]string, 0, len(platformMappings))
	for id := range platformMappings {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
