// Package surface models the calendar grid widget's authoritative state.
// The real grid runs in the browser; this side mirrors its event set and
// selection so the rest of the app can treat the grid as the system of
// record, issue commands to it, and re-read its state after each change.
package surface

import (
	"fmt"
	"sync"

	"caldeck/src-server/model"
)

// Selection is a date-range selection on the grid, raw strings exactly
// as the grid reports them.
type Selection struct {
	StartStr string `json:"startStr"`
	EndStr   string `json:"endStr"`
}

// Fields is the set of event properties an in-place update may touch.
// The id never changes through an update.
type Fields struct {
	Title       string
	Description string
	Start       string
	End         string
}

// CalendarSurface is the command/query side of the grid widget.
type CalendarSurface interface {
	AddEvent(event model.Event) error
	UpdateEvent(id string, fields Fields) error
	RemoveEvent(id string) error
	ClearSelection()
	Events() []model.Event
	HasEvent(id string) bool
}

// Grid is the in-process mirror of the browser grid. Every mutation
// notifies subscribers with a snapshot of the full event set, the same
// way the widget fires its events-set callback after add, update,
// remove or drag.
type Grid struct {
	mu          sync.Mutex
	events      []model.Event
	selection   *Selection
	subscribers []func([]model.Event)
}

func NewGrid() *Grid {
	return &Grid{}
}

// OnEventSetChanged registers fn to run with a snapshot of the whole
// event set after every mutation. Register before the first SetEvents.
func (g *Grid) OnEventSetChanged(fn func([]model.Event)) {
	g.mu.Lock()
	g.subscribers = append(g.subscribers, fn)
	g.mu.Unlock()
}

// SetEvents seeds the grid with a previously persisted collection.
// Fires the set-changed notification like any other mutation.
func (g *Grid) SetEvents(events []model.Event) {
	g.mu.Lock()
	g.events = append([]model.Event(nil), events...)
	g.mu.Unlock()
	g.notify()
}

func (g *Grid) Select(sel Selection) {
	g.mu.Lock()
	g.selection = &sel
	g.mu.Unlock()
}

// Selection returns the current range selection, nil when none.
func (g *Grid) Selection() *Selection {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.selection == nil {
		return nil
	}
	sel := *g.selection
	return &sel
}

func (g *Grid) ClearSelection() {
	g.mu.Lock()
	g.selection = nil
	g.mu.Unlock()
}

func (g *Grid) AddEvent(event model.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("(*Grid).AddEvent: %w", err)
	}
	g.mu.Lock()
	if g.hasEventLocked(event.ID) {
		g.mu.Unlock()
		return fmt.Errorf("(*Grid).AddEvent: event %q already exists", event.ID)
	}
	g.events = append(g.events, event)
	g.mu.Unlock()
	g.notify()
	return nil
}

func (g *Grid) UpdateEvent(id string, fields Fields) error {
	g.mu.Lock()
	idx := -1
	for i := range g.events {
		if g.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.mu.Unlock()
		return fmt.Errorf("(*Grid).UpdateEvent: event %q not found", id)
	}
	g.events[idx].Title = fields.Title
	g.events[idx].Description = fields.Description
	g.events[idx].Start = fields.Start
	g.events[idx].End = fields.End
	g.mu.Unlock()
	g.notify()
	return nil
}

func (g *Grid) RemoveEvent(id string) error {
	g.mu.Lock()
	idx := -1
	for i := range g.events {
		if g.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.mu.Unlock()
		return fmt.Errorf("(*Grid).RemoveEvent: event %q not found", id)
	}
	g.events = append(g.events[:idx], g.events[idx+1:]...)
	g.mu.Unlock()
	g.notify()
	return nil
}

func (g *Grid) Events() []model.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Event(nil), g.events...)
}

func (g *Grid) HasEvent(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hasEventLocked(id)
}

func (g *Grid) hasEventLocked(id string) bool {
	for i := range g.events {
		if g.events[i].ID == id {
			return true
		}
	}
	return false
}

func (g *Grid) notify() {
	g.mu.Lock()
	snapshot := append([]model.Event(nil), g.events...)
	subscribers := append(([]func([]model.Event))(nil), g.subscribers...)
	g.mu.Unlock()
	for _, fn := range subscribers {
		fn(snapshot)
	}
}
