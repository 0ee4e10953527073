package model_test

import (
	"testing"
	"time"

	"caldeck/src-server/model"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

func TestEventValidate(t *testing.T) {
	event := model.Event{
		ID:    "2024-01-05T10:00-Standup",
		Title: "Standup",
		Start: "2024-01-05T10:00",
		End:   "2024-01-05T10:30",
	}
	if err := event.Validate(); err != nil {
		t.Errorf("well-formed event should validate: %v", err)
	}

	for _, tc := range []struct {
		name  string
		event model.Event
	}{
		{"blank id", model.Event{Title: "Standup", Start: "2024-01-05T10:00"}},
		{"blank title", model.Event{ID: "x", Start: "2024-01-05T10:00"}},
		{"blank start", model.Event{ID: "x", Title: "Standup"}},
	} {
		if err := tc.event.Validate(); err == nil {
			t.Errorf("%s should not validate", tc.name)
		}
	}
}

func TestNewEventID(t *testing.T) {
	id := model.NewEventID("2024-01-05T10:00", "Standup")
	if id != "2024-01-05T10:00-Standup" {
		t.Errorf("unexpected id %q", id)
	}
}

func TestResolveTime(t *testing.T) {
	loc := time.UTC

	for _, tc := range []struct {
		in   string
		want time.Time
	}{
		{"2024-01-05T10:00:00Z", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"  2024-01-05T10:00  ", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
	} {
		got, err := model.ResolveTime(tc.in, loc, nil)
		if err != nil {
			t.Errorf("ResolveTime(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ResolveTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := model.ResolveTime("", loc, nil); err == nil {
		t.Error("blank string should not resolve")
	}
	if _, err := model.ResolveTime("gibberish", loc, nil); err == nil {
		t.Error("gibberish should not resolve without a natural parser")
	}
}

func TestResolveTimeNaturalFallback(t *testing.T) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	got, err := model.ResolveTime("tomorrow at 10am", time.UTC, w)
	if err != nil {
		t.Fatalf("natural date should resolve: %v", err)
	}
	if got.Hour() != 10 {
		t.Errorf("want 10am, got hour %d", got.Hour())
	}
}
