package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts a value produced by encoding/json (float64, string, bool, nil,
// []any, map[string]any) to a float64 using loose numeric coercion: numeric strings
// parse, booleans become 0 or 1, null and the empty string become 0, and anything
// unrepresentable becomes NaN.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return parseNumber(x)
	case []any:
		switch len(x) {
		case 0:
			return 0
		case 1:
			switch e := x[0].(type) {
			case float64, string, nil:
				return ToNumber(e)
			}
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.ContainsAny(s, "_xXpP") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
