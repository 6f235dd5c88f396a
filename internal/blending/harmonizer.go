package blending

import (
	"strconv"
	"strings"
)

// RawRow is one row as delivered by the ingestion layer: native field
// names mapped to whatever the source produced (string, number, nil).
type RawRow map[string]any

// CanonicalRow is one harmonized row: canonical field names mapped to
// normalized values. Dimensions are strings, metrics are float64, and
// absent fields are omitted rather than stored as nulls. A canonical row
// is self-contained; it carries no reference back to its raw source.
type CanonicalRow map[string]any

// HarmonizeRow converts one raw platform row into a canonical row using
// the platform's mapping table. The only error is an unknown platform;
// malformed values degrade to defaults per the value normalizers.
func HarmonizeRow(raw RawRow, platformID string) (CanonicalRow, error) {
	mapping, err := MappingFor(platformID)
	if err != nil {
		return nil, err
	}

	row := CanonicalRow{FieldSourcePlatform: platformID}

	for _, fm := range mapping {
		value, ok := raw[fm.Source]
		if !ok || isAbsent(value) {
			continue
		}
		switch fm.Transform {
		case TransformNumeric:
			row[fm.Target] = ParseNumeric(value)
		case TransformMicros:
			row[fm.Target] = ParseNumeric(value) / 1e6
		case TransformDate:
			row[fm.Target] = NormalizeDate(asString(value))
		case TransformNone:
			if s, isStr := value.(string); isStr {
				s = strings.TrimSpace(s)
				if strings.Contains(fm.Target, "date") {
					s = NormalizeDate(s)
				}
				row[fm.Target] = s
			} else {
				row[fm.Target] = value
			}
		}
	}

	// Derived ratios are always recomputed, never taken from raw input.
	row[FieldCTR] = CTR(Metric(row, FieldClicks), Metric(row, FieldImpressions))
	row[FieldCPC] = CPC(Metric(row, FieldSpend), Metric(row, FieldClicks))

	return row, nil
}

// HarmonizeDataset harmonizes every row of one platform's dataset,
// preserving input order. Rows that harmonize to nothing beyond the
// platform tag are still emitted.
func HarmonizeDataset(rows []RawRow, platformID string) ([]CanonicalRow, error) {
	if _, err := MappingFor(platformID); err != nil {
		return nil, err
	}
	out := make([]CanonicalRow, 0, len(rows))
	for _, raw := range rows {
		row, err := HarmonizeRow(raw, platformID)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// Metric reads a numeric field from a canonical row, treating absent or
// non-numeric values as 0.
func Metric(row CanonicalRow, field string) float64 {
	v, ok := row[field]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}

// Dimension reads a string field from a canonical row; absent fields are
// the empty string.
func Dimension(row CanonicalRow, field string) string {
	v, ok := row[field]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// isAbsent reports whether a raw value must be skipped: nil or a blank
// string. Zero numbers are real values, not absences.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	// Numeric dates: GA4 exports sometimes deliver 20240115 as a number.
	if f := ParseNumeric(v); f != 0 && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return ""
}
