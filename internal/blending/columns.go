package blending

// ColumnType classifies a canonical column for the aggregation pipeline.
type ColumnType string

const (
	// ColumnDimension is a non-additive grouping field (date, campaign_name).
	ColumnDimension ColumnType = "dimension"
	// ColumnMetric is an additive numeric measure (impressions, spend).
	ColumnMetric ColumnType = "metric"
	// ColumnMeta is an identifying field that is never aggregated (source_platform).
	ColumnMeta ColumnType = "meta"
)

// Column describes one entry of the canonical schema shared by every
// harmonized row, regardless of which platform it came from.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
	// Derived columns are ratios recomputed from other metrics. They are
	// never read from raw input and never summed.
	Derived bool
	// Integer metrics (impressions, clicks, ...) are reported whole;
	// everything else gets display rounding to 2 decimals.
	Integer bool
}

// Canonical field names. Mapping tables and downstream consumers refer to
// these instead of string literals.
const (
	FieldDate           = "date"
	FieldCampaignName   = "campaign_name"
	FieldAdsetName      = "adset_name"
	FieldAdName         = "ad_name"
	FieldImpressions    = "impressions"
	FieldClicks         = "clicks"
	FieldSpend          = "spend"
	FieldConversions    = "conversions"
	FieldRevenue        = "revenue"
	FieldSessions       = "sessions"
	FieldUsers          = "users"
	FieldOrders         = "orders"
	FieldCTR            = "ctr"
	FieldCPC            = "cpc"
	FieldROAS           = "roas"
	FieldSourcePlatform = "source_platform"
)

// columns is the canonical column registry. Order matches report display
// order; the aggregator and summary calculator iterate it rather than
// discovering columns at runtime.
var columns = []Column{
	{Name: FieldDate, Type: ColumnDimension, Required: true},
	{Name: FieldCampaignName, Type: ColumnDimension},
	{Name: FieldAdsetName, Type: ColumnDimension},
	{Name: FieldAdName, Type: ColumnDimension},
	{Name: FieldImpressions, Type: ColumnMetric, Integer: true},
	{Name: FieldClicks, Type: ColumnMetric, Integer: true},
	{Name: FieldSessions, Type: ColumnMetric, Integer: true},
	{Name: FieldUsers, Type: ColumnMetric, Integer: true},
	{Name: FieldOrders, Type: ColumnMetric, Integer: true},
	{Name: FieldSpend, Type: ColumnMetric},
	{Name: FieldConversions, Type: ColumnMetric},
	{Name: FieldRevenue, Type: ColumnMetric},
	{Name: FieldCTR, Type: ColumnMetric, Derived: true},
	{Name: FieldCPC, Type: ColumnMetric, Derived: true},
	{Name: FieldSourcePlatform, Type: ColumnMeta, Required: true},
}

var columnIndex = func() map[string]Column {
	idx := make(map[string]Column, len(columns))
	for _, c := range columns {
		idx[c.Name] = c
	}
	return idx
}()

// Columns returns a copy of the canonical column registry.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// LookupColumn returns the registry entry for a canonical field name.
func LookupColumn(name string) (Column, bool) {
	c, ok := columnIndex[name]
	return c, ok
}

// MetricColumns returns the additive (non-derived) metric columns.
func MetricColumns() []Column {
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		if c.Type == ColumnMetric && !c.Derived {
			out = append(out, c)
		}
	}
	return out
}
