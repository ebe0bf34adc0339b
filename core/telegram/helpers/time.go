package helpers

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// ParseISODate parses a strict YYYY-MM-DD date. Unlike a flexible multi-layout
// parse, partial or reordered inputs are rejected so conversation flows can
// re-prompt without guessing what the user meant.
func ParseISODate(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if len(s) != len(isoDateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(isoDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
