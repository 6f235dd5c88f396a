package blending

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Value normalization for harmonization. The policy throughout is maximal
// permissiveness: ad-platform exports carry currency symbols, locale
// commas, and at least three date encodings, so malformed values degrade
// to defaults instead of failing the row.

var (
	compactDateRe = regexp.MustCompile(`^\d{8}$`)
	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var currencySymbols = [...]string{"$", "€", "£", "¥"}

// ParseNumeric converts a raw cell value to a float64. Absent or
// unparseable values become 0, never an error.
func ParseNumeric(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		for _, sym := range currencySymbols {
			s = strings.TrimPrefix(s, sym)
		}
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// dateLayouts are tried in order for values that are neither YYYYMMDD nor
// already YYYY-MM-DD. Covers ISO datetimes with and without zone, and the
// slash formats some platform exports use.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// NormalizeDate reduces a raw date value to YYYY-MM-DD. Empty input yields
// the empty string; an unparseable value passes through unchanged rather
// than failing the row.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if compactDateRe.MatchString(s) {
		return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
	}
	if isoDateRe.MatchString(s) {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// Round rounds half-up at the given decimal precision. Decimal arithmetic
// keeps binary float artifacts out of the result: Round(0.1+0.2, 2) is
// exactly 0.3.
func Round(value float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// CTR is clicks / impressions * 100, rounded to 2 decimals.
// Zero impressions yields 0, never a division error.
func CTR(clicks, impressions float64) float64 {
	if impressions <= 0 {
		return 0
	}
	return Round(clicks/impressions*100, 2)
}

// CPC is spend / clicks, rounded to 2 decimals. Zero clicks yields 0.
func CPC(spend, clicks float64) float64 {
	if clicks <= 0 {
		return 0
	}
	return Round(spend/clicks, 2)
}

// ROAS is revenue / spend, rounded to 2 decimals. Zero spend yields 0.
func ROAS(revenue, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return Round(revenue/spend, 2)
}
