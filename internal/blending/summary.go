package blending

// DateRange is the inclusive span of dates seen in a dataset. Both ends
// are nil when no row carries a date.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// SummaryStats describes a canonical dataset as a whole: row count, date
// span, the set of contributing platforms, and blended totals including
// the dataset-level derived ratios.
type SummaryStats struct {
	TotalRows int                `json:"total_rows"`
	DateRange DateRange          `json:"date_range"`
	Platforms []string           `json:"platforms"`
	Totals    map[string]float64 `json:"totals"`
}

// Summarize computes summary statistics for an arbitrary canonical
// dataset. Every registry metric appears in Totals (0 when absent from
// all rows), plus ctr, cpc, and roas computed from the totals.
func Summarize(rows []CanonicalRow) SummaryStats {
	metrics := MetricColumns()
	totals := make(map[string]float64, len(metrics)+3)
	for _, mc := range metrics {
		totals[mc.Name] = 0
	}

	var start, end string
	platforms := make([]string, 0)
	seenPlatform := make(map[string]bool)

	for _, row := range rows {
		if d := Dimension(row, FieldDate); d != "" {
			if start == "" || d < start {
				start = d
			}
			if end == "" || d > end {
				end = d
			}
		}
		if p := Dimension(row, FieldSourcePlatform); p != "" && !seenPlatform[p] {
			seenPlatform[p] = true
			platforms = append(platforms, p)
		}
		for _, mc := range metrics {
			if v, ok := row[mc.Name]; ok {
				if f, isNum := v.(float64); isNum {
					totals[mc.Name] += f
				}
			}
		}
	}

	for name, sum := range totals {
		if c, ok := LookupColumn(name); ok && !c.Integer {
			totals[name] = Round(sum, 2)
		}
	}

	totals[FieldCTR] = CTR(totals[FieldClicks], totals[FieldImpressions])
	totals[FieldCPC] = CPC(totals[FieldSpend], totals[FieldClicks])
	totals[FieldROAS] = ROAS(totals[FieldRevenue], totals[FieldSpend])

	stats := SummaryStats{
		TotalRows: len(rows),
		Platforms: platforms,
		Totals:    totals,
	}
	if start != "" {
		stats.DateRange.Start = &start
		stats.DateRange.End = &end
	}
	return stats
}
