// Package numfmt renders float64 values the way a JavaScript Number prints
// itself. The backend and the original web client exchange numbers as text,
// so validation and display both depend on this exact canonical form.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// Format returns the shortest round-tripping decimal form of f, switching to
// exponent notation outside [1e-6, 1e21) the way Number#toString does.
func Format(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// covers negative zero, which prints as "0"
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return exponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// exponent rewrites Go's "1.5e-07" as "1.5e-7".
func exponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 > len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx], s[idx+1], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}
