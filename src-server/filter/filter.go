// Package filter derives the sidebar's filtered view from the event
// collection. Pure function of (events, keyword); never mutates.
package filter

import (
	"strings"

	"caldeck/src-server/model"

	"golang.org/x/text/cases"
)

// Apply keeps the events whose title or description contains keyword,
// case-insensitively, preserving the original order. A blank keyword is
// the identity.
func Apply(events []model.Event, keyword string) []model.Event {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return events
	}

	// a Caser is stateful, one per call
	fold := cases.Fold()
	needle := fold.String(keyword)

	out := make([]model.Event, 0, len(events))
	for _, event := range events {
		if strings.Contains(fold.String(event.Title), needle) ||
			strings.Contains(fold.String(event.Description), needle) {
			out = append(out, event)
		}
	}
	return out
}
