package cli

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v for display. Integral values have no fractional
// part ("6", not "6.0"); magnitudes outside [1e-4, 1e16) use exponent form.
func FormatNumber(v float64) string {
	if v == 0 {
		// Covers negative zero too.
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e-4 && abs < 1e16 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatCalculation renders a computed calculation as "name(a, b) = result".
func FormatCalculation(name string, operands []float64, result float64) string {
	parts := make([]string, len(operands))
	for i, n := range operands {
		parts[i] = FormatNumber(n)
	}
	return name + "(" + strings.Join(parts, ", ") + ") = " + FormatNumber(result)
}
