// Package repair turns newline-delimited JSON objects into a JSON array
package repair

import (
	"strings"

	perr "itemsexport/internal/platform/errors"
)

// ErrEmpty is returned when there is no non-blank line to work with
var ErrEmpty = perr.New(perr.ErrorCodeInvalidArgument, "no non-blank lines")

// Result is the array text plus whether it had to be wrapped
type Result struct {
	Text    string
	Wrapped bool
	Lines   int // non-blank lines seen
}

// Lines repairs content split into lines. When the first non-blank line
// already starts with "[" content is returned unchanged. Otherwise each
// non-blank line is trimmed, joined with ",\n" and wrapped in "[\n" / "\n]"
func Lines(content string, lines []string) (Result, error) {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return Result{}, ErrEmpty
	}
	if strings.HasPrefix(kept[0], "[") {
		return Result{Text: content, Lines: len(kept)}, nil
	}
	return Result{
		Text:    "[\n" + strings.Join(kept, ",\n") + "\n]",
		Wrapped: true,
		Lines:   len(kept),
	}, nil
}

// Split breaks content into lines on "\n"; trailing "\r" is left for Lines to trim
func Split(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
