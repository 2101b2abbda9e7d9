// Package normalize converts raw source cells into canonical numbers.
//
// Every normalizer returns nil for "not observed" (nil, empty string,
// unparseable text) so that callers can keep null distinct from zero.
// None of them return errors: missing metrics are routine in the exports.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Number parses a string or passes through a numeric value. Thousands
// separators ("1,234.5") are accepted.
func Number(val interface{}) *float64 {
	f, ok := extract(val)
	if !ok {
		return nil
	}
	return &f
}

// Percentage handles "55.2%" style strings by stripping the sign and dividing
// by 100. Bare numbers, string or numeric, are accepted as-is: the scale of a
// bare column is part of each source's column contract.
func Percentage(val interface{}) *float64 {
	if s, ok := val.(string); ok && strings.Contains(s, "%") {
		f, ok := parseString(strings.ReplaceAll(s, "%", ""))
		if !ok {
			return nil
		}
		f /= 100
		return &f
	}
	return Number(val)
}

// Points is for columns whose contract is percentage points (52.3 meaning
// 52.3%). Bare values are divided by 100; "%" strings behave like Percentage.
func Points(val interface{}) *float64 {
	if s, ok := val.(string); ok && strings.Contains(s, "%") {
		return Percentage(s)
	}
	f, ok := extract(val)
	if !ok {
		return nil
	}
	f /= 100
	return &f
}

// Rank returns a positive integer rank. Zero, negative and fractional values
// are treated as not observed.
func Rank(val interface{}) (int, bool) {
	f, ok := extract(val)
	if !ok || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Int returns an integer count such as games played.
func Int(val interface{}) (int, bool) {
	f, ok := extract(val)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func extract(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case *float64:
		if v == nil {
			return 0, false
		}
		return finite(*v)
	case string:
		return parseString(v)
	default:
		return 0, false
	}
}

func parseString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// finite rejects NaN and ±Inf; ParseFloat accepts "NaN" and "Inf" literals.
func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
