package surface_test

import (
	"testing"

	"caldeck/src-server/model"
	"caldeck/src-server/surface"
)

func TestGridNotifiesOnEveryMutation(t *testing.T) {
	grid := surface.NewGrid()
	var notified [][]model.Event
	grid.OnEventSetChanged(func(events []model.Event) {
		notified = append(notified, events)
	})

	event := model.Event{ID: "a", Title: "A", Start: "2024-01-05T10:00", End: "2024-01-05T11:00"}
	if err := grid.AddEvent(event); err != nil {
		t.Fatal(err)
	}
	if err := grid.UpdateEvent("a", surface.Fields{Title: "A2", Start: event.Start, End: event.End}); err != nil {
		t.Fatal(err)
	}
	if err := grid.RemoveEvent("a"); err != nil {
		t.Fatal(err)
	}

	if len(notified) != 3 {
		t.Fatalf("want 3 set-changed notifications, got %d", len(notified))
	}
	if len(notified[0]) != 1 || notified[0][0].ID != "a" {
		t.Errorf("add notification should carry the new set, got %+v", notified[0])
	}
	if notified[1][0].Title != "A2" {
		t.Errorf("update notification should carry the changed set, got %+v", notified[1])
	}
	if len(notified[2]) != 0 {
		t.Errorf("remove notification should carry the emptied set, got %+v", notified[2])
	}
}

func TestGridRejectsDuplicateAndInvalid(t *testing.T) {
	grid := surface.NewGrid()
	event := model.Event{ID: "a", Title: "A", Start: "2024-01-05T10:00", End: "2024-01-05T11:00"}
	if err := grid.AddEvent(event); err != nil {
		t.Fatal(err)
	}
	if err := grid.AddEvent(event); err == nil {
		t.Error("duplicate id should be rejected")
	}
	if err := grid.AddEvent(model.Event{ID: "b"}); err == nil {
		t.Error("event without title/start should be rejected")
	}
}

func TestGridUpdateKeepsID(t *testing.T) {
	grid := surface.NewGrid()
	if err := grid.AddEvent(model.Event{ID: "a", Title: "A", Start: "2024-01-05T10:00", End: "2024-01-05T11:00"}); err != nil {
		t.Fatal(err)
	}
	if err := grid.UpdateEvent("a", surface.Fields{
		Title: "Renamed", Description: "d", Start: "2024-01-06T10:00", End: "2024-01-06T11:00",
	}); err != nil {
		t.Fatal(err)
	}

	events := grid.Events()
	if len(events) != 1 || events[0].ID != "a" {
		t.Fatalf("update must not change the id, got %+v", events)
	}
	if events[0].Title != "Renamed" || events[0].Description != "d" || events[0].Start != "2024-01-06T10:00" {
		t.Errorf("update did not apply all fields: %+v", events[0])
	}

	if err := grid.UpdateEvent("missing", surface.Fields{}); err == nil {
		t.Error("updating an unknown event should fail")
	}
	if err := grid.RemoveEvent("missing"); err == nil {
		t.Error("removing an unknown event should fail")
	}
}

func TestGridSelection(t *testing.T) {
	grid := surface.NewGrid()
	if grid.Selection() != nil {
		t.Error("fresh grid should have no selection")
	}
	grid.Select(surface.Selection{StartStr: "2024-01-05T10:00", EndStr: "2024-01-05T11:00"})
	sel := grid.Selection()
	if sel == nil || sel.StartStr != "2024-01-05T10:00" {
		t.Errorf("selection not recorded: %+v", sel)
	}
	grid.ClearSelection()
	if grid.Selection() != nil {
		t.Error("selection should be cleared")
	}
}
