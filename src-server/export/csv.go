package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"caldeck/src-server/model"
)

const CSVFilename = "events.csv"

// human-readable, what the widget's sidebar shows
const (
	csvStartLayout = "Jan 2, 2006, 3:04 PM"
	csvEndLayout   = "3:04 PM"
)

// ToCSV writes one line per event, no header, fields in fixed order:
// title, formatted start, formatted end, description. Fields containing
// delimiters or newlines are quoted per RFC 4180.
func ToCSV(events []model.Event, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, event := range events {
		if err := w.Write([]string{
			event.Title,
			formatDate(event.Start, csvStartLayout, loc),
			formatDate(event.End, csvEndLayout, loc),
			event.Description,
		}); err != nil {
			return nil, fmt.Errorf("ToCSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("ToCSV: %w", err)
	}
	return buf.Bytes(), nil
}

// formatDate renders a stored date string human-readably, falling back
// to the raw string when it doesn't resolve.
func formatDate(s, layout string, loc *time.Location) string {
	t, err := model.ResolveTime(s, loc, nil)
	if err != nil {
		return s
	}
	return t.Format(layout)
}
