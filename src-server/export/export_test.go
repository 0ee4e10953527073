package export_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"caldeck/src-server/export"
	"caldeck/src-server/filter"
	"caldeck/src-server/model"
)

func sampleEvents() []model.Event {
	return []model.Event{
		{ID: "2024-01-05T10:00-Standup", Title: "Standup", Description: "daily sync", Start: "2024-01-05T10:00", End: "2024-01-05T10:30"},
		{ID: "2024-01-05T12:00-Lunch", Title: "Lunch", Start: "2024-01-05T12:00", End: "2024-01-05T13:00"},
	}
}

func TestToCSVExportsOnlyFilteredEvents(t *testing.T) {
	// with keyword "standup" only one of the two events matches
	events := filter.Apply(sampleEvents(), "standup")

	out, err := export.ToCSV(events, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("want exactly one line, got %d: %q", len(lines), out)
	}

	// fixed field order: title, formatted start, formatted end,
	// description; the start contains commas so it comes out quoted
	want := `Standup,"Jan 5, 2024, 10:00 AM",10:30 AM,daily sync`
	if lines[0] != want {
		t.Errorf("got %q, want %q", lines[0], want)
	}
}

func TestToCSVQuotesEmbeddedDelimiters(t *testing.T) {
	events := []model.Event{
		{ID: "x", Title: `Standup, "daily"`, Description: "first\nsecond", Start: "2024-01-05T10:00", End: "2024-01-05T10:30"},
	}
	out, err := export.ToCSV(events, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), `"Standup, ""daily"""`) {
		t.Errorf("comma and quote in title should be escaped, got %q", out)
	}
	if !strings.Contains(string(out), "\"first\nsecond\"") {
		t.Errorf("newline in description should be quoted, got %q", out)
	}
}

func TestToCSVNoHeader(t *testing.T) {
	out, err := export.ToCSV(sampleEvents(), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.ToLower(string(out)), "title,") {
		t.Errorf("CSV export must not carry a header row: %q", out)
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	events := sampleEvents()
	out, err := export.ToJSON(events)
	if err != nil {
		t.Fatal(err)
	}

	var got []model.Event
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(events) {
		t.Fatalf("want %d events, got %d", len(events), len(got))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Errorf("event %d not preserved: got %+v, want %+v", i, got[i], events[i])
		}
	}
}

func TestToJSONEmpty(t *testing.T) {
	out, err := export.ToJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[]" {
		t.Errorf("empty export should be an empty array, got %q", out)
	}
}

func TestToICS(t *testing.T) {
	out, err := export.ToICS(sampleEvents(), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	body := string(out)
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("missing VCALENDAR wrapper")
	}
	if strings.Count(body, "BEGIN:VEVENT") != 2 {
		t.Errorf("want 2 VEVENTs, got %d", strings.Count(body, "BEGIN:VEVENT"))
	}
	if !strings.Contains(body, "SUMMARY:Standup") {
		t.Error("missing event summary")
	}
}

func TestToICSSkipsUnresolvableDates(t *testing.T) {
	events := []model.Event{
		{ID: "bad", Title: "Broken", Start: "whenever", End: "later"},
		{ID: "good", Title: "Standup", Start: "2024-01-05T10:00", End: "2024-01-05T10:30"},
	}
	out, err := export.ToICS(events, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(out), "BEGIN:VEVENT") != 1 {
		t.Errorf("unresolvable event should be skipped: %q", out)
	}
}
