// AngelaMos | 2026
// loose.go

package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// LooseInt64 reads a form value that may arrive as a JSON number or a
// numeric string. present is false for null or blank input; ok is false when
// the value is present but not an integer. Strings are read as plain base 10
// so a zero-padded id stays decimal.
func LooseInt64(v any) (n int64, present, ok bool) {
	if isBlank(v) {
		return 0, false, true
	}

	if s, isString := v.(string); isString {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, true, false
		}
		return n, true, true
	}

	n, err := cast.ToInt64E(v)
	if err != nil || isBool(v) {
		return 0, true, false
	}
	if f, isFloat := v.(float64); isFloat && f != float64(n) {
		return 0, true, false
	}

	return n, true, true
}

// LooseFloat64 is LooseInt64 for amounts. NaN and infinities are rejected.
func LooseFloat64(v any) (f float64, present, ok bool) {
	if isBlank(v) {
		return 0, false, true
	}

	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || isBool(v) || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, false
	}

	return f, true, true
}

// LooseString returns the trimmed string form of v, or "" for null.
func LooseString(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
