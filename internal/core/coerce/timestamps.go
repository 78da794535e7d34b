package coerce

import (
	"strings"
	"time"

	perr "itemsexport/internal/platform/errors"
)

const (
	// LayoutFraction is tried first: seconds with a 1-6 digit fraction
	LayoutFraction = "2006-01-02T15:04:05.999999Z"
	// LayoutSeconds is the fallback without a fraction
	LayoutSeconds = "2006-01-02T15:04:05Z"
	// LayoutOutput is how timestamps are rendered in the CSV
	LayoutOutput = "2006-01-02 15:04:05"

	maxFractionDigits = 6

	secondsPrefix = "2006-01-02T15:04:05"
)

// Timestamp parses s in LayoutFraction or, failing that, LayoutSeconds.
// The result is UTC. Anything else is an ErrorCodeParse error.
func Timestamp(s string) (time.Time, error) {
	if t, ok := parseFraction(s); ok {
		return t, nil
	}
	// time.Parse tolerates a "." or "," fraction and one-digit hours the
	// layout does not mention, so the fallback must match its exact width
	if len(s) == len(LayoutSeconds) {
		if t, err := time.Parse(LayoutSeconds, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, perr.Parsef("timestamp %q matches neither %s nor %s", s, LayoutFraction, LayoutSeconds)
}

func parseFraction(s string) (time.Time, bool) {
	dot := strings.LastIndexByte(s, '.')
	if dot != len(secondsPrefix) || !strings.HasSuffix(s, "Z") {
		return time.Time{}, false
	}
	frac := s[dot+1 : len(s)-1]
	if len(frac) == 0 || len(frac) > maxFractionDigits || !allDigits(frac) {
		return time.Time{}, false
	}
	t, err := time.Parse(LayoutFraction, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatTimestamp renders t at whole-second precision without a zone suffix
func FormatTimestamp(t time.Time) string { return t.UTC().Format(LayoutOutput) }
