package blending

import "strings"

// DefaultGroupBy is the reporting granularity used when the caller does
// not choose one.
var DefaultGroupBy = []string{FieldDate, FieldSourcePlatform}

// groupKeySep is unlikely to occur in dimension values; it keeps
// ("a","bc") and ("ab","c") from colliding into one group.
const groupKeySep = "\x1f"

// AggregateData groups canonical rows by the given dimensions, sums every
// additive metric present in each group, and recomputes the derived
// ratios from the sums. Rows missing a groupBy dimension contribute an
// empty key segment, so all such rows merge into one group and the
// aggregated row omits that dimension; this matches the historical
// behavior rather than inventing an "(none)" bucket.
func AggregateData(rows []CanonicalRow, groupBy []string) []CanonicalRow {
	if len(groupBy) == 0 {
		groupBy = DefaultGroupBy
	}
	if len(rows) == 0 {
		return []CanonicalRow{}
	}

	metrics := MetricColumns()

	type group struct {
		dims map[string]string
		sums map[string]float64
		seen map[string]bool
	}

	grouped := make(map[string]*group)
	order := make([]string, 0)

	for _, row := range rows {
		parts := make([]string, len(groupBy))
		for i, dim := range groupBy {
			parts[i] = Dimension(row, dim)
		}
		key := strings.Join(parts, groupKeySep)

		g, ok := grouped[key]
		if !ok {
			g = &group{
				dims: make(map[string]string, len(groupBy)),
				sums: make(map[string]float64, len(metrics)),
				seen: make(map[string]bool, len(metrics)),
			}
			for _, dim := range groupBy {
				if v, present := row[dim]; present {
					if s, isStr := v.(string); isStr {
						g.dims[dim] = s
					}
				}
			}
			grouped[key] = g
			order = append(order, key)
		}

		for _, mc := range metrics {
			v, present := row[mc.Name]
			if !present {
				continue
			}
			g.seen[mc.Name] = true
			if f, isNum := v.(float64); isNum {
				g.sums[mc.Name] += f
			}
		}
	}

	out := make([]CanonicalRow, 0, len(order))
	for _, key := range order {
		g := grouped[key]
		row := make(CanonicalRow, len(g.dims)+len(g.sums)+2)
		for dim, v := range g.dims {
			row[dim] = v
		}
		for _, mc := range metrics {
			if !g.seen[mc.Name] {
				continue
			}
			sum := g.sums[mc.Name]
			if !mc.Integer {
				sum = Round(sum, 2)
			}
			row[mc.Name] = sum
		}
		// Ratios are recomputed from the sums; summed ratios would be wrong.
		row[FieldCTR] = CTR(g.sums[FieldClicks], g.sums[FieldImpressions])
		row[FieldCPC] = CPC(g.sums[FieldSpend], g.sums[FieldClicks])
		out = append(out, row)
	}
	return out
}
