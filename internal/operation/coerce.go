package operation

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NumberFrom converts a single operand to float64.
//
// Strings are parsed after trimming surrounding whitespace; a single
// underscore between two digits is accepted as a separator ("1_000").
// Booleans and nil are rejected rather than treated as 1/0.
func NumberFrom(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return parseNumber(string(n), v)
	case string:
		return parseNumber(n, v)
	}
	return 0, notANumber(v)
}

func parseNumber(s string, orig any) (float64, error) {
	digits, ok := stripDigitSeparators(strings.TrimSpace(s))
	if !ok {
		return 0, notANumber(orig)
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, notANumber(orig)
	}
	return f, nil
}

// stripDigitSeparators removes underscores that sit between two decimal
// digits. Any other underscore makes the string malformed.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func notANumber(v any) error {
	return invalidInputf("not a number: %#v", v)
}

// Numbers coerces every value, in order. It fails on the first value that
// cannot be converted and returns no partial slice.
func Numbers(values []any) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := NumberFrom(v)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Values boxes nums so they can be passed to a Func.
func Values(nums []float64) []any {
	out := make([]any, len(nums))
	for i, n := range nums {
		out[i] = n
	}
	return out
}

func requireOperands(name string, nums []float64) error {
	if len(nums) == 0 {
		return invalidInputf("%s requires at least one number", name)
	}
	return nil
}
