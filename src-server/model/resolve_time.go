package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
)

// layouts the browser grid and the edit form are known to produce, most
// specific first
var resolveLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ResolveTime turns a draft date string into a time.Time. Exact layouts
// are tried first; if a when.Parser is given, free-form input like
// "tomorrow 10am" is accepted as a last resort.
func ResolveTime(s string, loc *time.Location, w *when.Parser) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("ResolveTime: date string is blank")
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range resolveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if w != nil {
		result, err := w.Parse(s, time.Now().In(loc))
		if err == nil && result != nil {
			return result.Time, nil
		}
	}
	return time.Time{}, fmt.Errorf("ResolveTime: can't resolve %q as a date", s)
}
