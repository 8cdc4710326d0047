package nutrition

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds x to places decimals. Ties are resolved half-to-even on the
// exact binary value, so 1673.75 rounds to 1673.8 and 0.125 to 0.12.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// FormatDecimal renders x in shortest round-trip form, always with a
// fractional part or exponent: 105 -> "105.0", 108.75 -> "108.75",
// 1e16 -> "1e+16".
func FormatDecimal(x float64) string {
	abs := math.Abs(x)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// FormatGrams renders a gram amount with its unit, e.g. "105.0g".
func FormatGrams(g float64) string {
	return FormatDecimal(g) + "g"
}
