package blending

import "testing"

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"whitespace", "   ", 0},
		{"plain integer string", "1234", 1234},
		{"float string", "12.5", 12.5},
		{"currency dollar", "$1,234.56", 1234.56},
		{"currency euro", "€99.90", 99.9},
		{"currency pound", "£5", 5},
		{"currency yen", "¥1,000", 1000},
		{"thousands commas", "1,234,567", 1234567},
		{"scientific notation", "1.5e3", 1500},
		{"negative", "-42.5", -42.5},
		{"garbage", "abc", 0},
		{"native float", 100.0, 100},
		{"native int", 7, 7},
		{"native negative", -3.25, -3.25},
		{"unsupported type", []string{"x"}, 0},
		{"map value", map[string]any{"a": 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumeric(tt.input); got != tt.want {
				t.Errorf("ParseNumeric(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "  ", ""},
		{"compact YYYYMMDD", "20240115", "2024-01-15"},
		{"already ISO", "2024-01-15", "2024-01-15"},
		{"ISO datetime zulu", "2024-01-15T10:30:00Z", "2024-01-15"},
		{"ISO datetime offset", "2024-01-15T10:30:00+02:00", "2024-01-15"},
		{"datetime no zone", "2024-01-15 10:30:00", "2024-01-15"},
		{"slash date", "2024/01/15", "2024-01-15"},
		{"us slash date", "01/15/2024", "2024-01-15"},
		{"unparseable passes through", "not-a-date", "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int32
		want   float64
	}{
		{"float artifact", 0.1 + 0.2, 2, 0.3},
		{"half up", 1.235, 2, 1.24},
		{"half up negative precision input", 2.675, 2, 2.68},
		{"no-op", 5.25, 2, 5.25},
		{"whole", 100, 2, 100},
		{"zero places", 2.5, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.value, tt.places); got != tt.want {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestCTRZeroGuard(t *testing.T) {
	if got := CTR(50, 0); got != 0 {
		t.Errorf("CTR with zero impressions = %v, want 0", got)
	}
	if got := CTR(50, -10); got != 0 {
		t.Errorf("CTR with negative impressions = %v, want 0", got)
	}
	if got := CTR(50, 1000); got != 5.0 {
		t.Errorf("CTR(50, 1000) = %v, want 5.0", got)
	}
}

func TestCPCZeroGuard(t *testing.T) {
	if got := CPC(100, 0); got != 0 {
		t.Errorf("CPC with zero clicks = %v, want 0", got)
	}
	if got := CPC(100, -1); got != 0 {
		t.Errorf("CPC with negative clicks = %v, want 0", got)
	}
	if got := CPC(100, 50); got != 2.0 {
		t.Errorf("CPC(100, 50) = %v, want 2.0", got)
	}
}

func TestROAS(t *testing.T) {
	if got := ROAS(500, 0); got != 0 {
		t.Errorf("ROAS with zero spend = %v, want 0", got)
	}
	if got := ROAS(500, 250); got != 2.0 {
		t.Errorf("ROAS(500, 250) = %v, want 2.0", got)
	}
	if got := ROAS(100, 300); got != 0.33 {
		t.Errorf("ROAS(100, 300) = %v, want 0.33", got)
	}
}
