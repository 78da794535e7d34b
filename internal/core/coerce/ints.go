// Package coerce turns loosely typed export values into strict ones.
// Integer coercion never fails (unusable input becomes nil); timestamp
// parsing does, and callers treat that as fatal.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NaNSentinel is the literal string some exports write for missing numbers
const NaNSentinel = "NaN"

// Int coerces v to an integer, truncating toward zero. It returns nil for
// nil, "", NaNSentinel and anything that does not read as a finite number
// within int64 range. Accepted inputs are what encoding/json decodes into
// (with or without UseNumber) plus Go integer types.
func Int(v any) *int64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if x == "" || x == NaNSentinel {
			return nil
		}
		p, ok := parseFloat(x)
		if !ok {
			return nil
		}
		f = p
	case json.Number:
		p, ok := parseFloat(x.String())
		if !ok {
			return nil
		}
		f = p
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		return ptr(int64(x))
	case int64:
		return ptr(x)
	case int32:
		return ptr(int64(x))
	case bool:
		if x {
			return ptr(1)
		}
		return ptr(0)
	default:
		return nil
	}
	return truncate(f)
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// only decimal notation; ParseFloat would also take hex floats
	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// float64 bounds that still convert to int64 without overflow
const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
)

func truncate(f float64) *int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	t := math.Trunc(f)
	if t < minInt64Float || t >= maxInt64Float {
		return nil
	}
	return ptr(int64(t))
}

func ptr(n int64) *int64 { return &n }
