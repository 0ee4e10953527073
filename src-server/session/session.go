// Package session implements the edit-dialog state machine: one dialog
// at a time, Closed until the grid reports a range selection (create) or
// an event click (edit), back to Closed after every submit, delete or
// cancel. All mutations go out as commands to the grid surface; the
// session never touches the collection directly.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"caldeck/src-server/collection"
	"caldeck/src-server/model"
	"caldeck/src-server/surface"

	"github.com/google/uuid"
	"github.com/olebedev/when"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreating
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "closed"
	}
}

// Validation failures keep the dialog open; they are user input problems,
// not errors.
var (
	ErrMissingField     = errors.New("title, start date and end date are required")
	ErrUnresolvableTime = errors.New("can't make sense of the start or end date")
	ErrEndBeforeStart   = errors.New("end date must not be before start date")
	ErrClosed           = errors.New("no dialog is open")
	ErrNotEditing       = errors.New("no event is being edited")
)

// Draft holds the in-progress, unvalidated form values. Free-form
// strings until submit.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

type EditSession struct {
	mu        sync.Mutex
	mode      Mode
	draft     Draft
	editingID string

	grid   surface.CalendarSurface
	events *collection.Collection
	loc    *time.Location
	when   *when.Parser
}

func New(grid surface.CalendarSurface, events *collection.Collection, loc *time.Location, w *when.Parser) *EditSession {
	return &EditSession{
		grid:   grid,
		events: events,
		loc:    loc,
		when:   w,
	}
}

func (s *EditSession) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *EditSession) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// EditingID returns the id of the event being edited, blank outside
// editing mode.
func (s *EditSession) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// BeginCreate opens the dialog for a fresh event covering the selected
// range. A dialog already open is discarded; the grid serializes
// interactions so this only happens after a stale client reload.
func (s *EditSession) BeginCreate(sel surface.Selection) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeCreating
	s.editingID = ""
	s.draft = Draft{
		StartTime: sel.StartStr,
		EndTime:   sel.EndStr,
	}
	return s.draft
}

// BeginEdit opens the dialog pre-filled from the clicked event.
func (s *EditSession) BeginEdit(id string) (Draft, error) {
	event, ok := s.events.Get(id)
	if !ok {
		return Draft{}, fmt.Errorf("(*EditSession).BeginEdit: event %q not found", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeEditing
	s.editingID = event.ID
	s.draft = Draft{
		Title:       event.Title,
		Description: event.Description,
		StartTime:   event.Start,
		EndTime:     event.End,
	}
	return s.draft, nil
}

// UpdateDraft overwrites the draft with the form's current values.
func (s *EditSession) UpdateDraft(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeClosed {
		return
	}
	s.draft = d
}

// Cancel discards the draft with no side effects beyond clearing the
// grid selection.
func (s *EditSession) Cancel() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	s.grid.ClearSelection()
}

// Submit validates the draft and issues the add or update command to the
// grid. On a validation failure the session stays open and unchanged.
// Returns the id of the created or updated event.
func (s *EditSession) Submit() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeClosed {
		return "", ErrClosed
	}

	title := strings.TrimSpace(s.draft.Title)
	startStr := strings.TrimSpace(s.draft.StartTime)
	endStr := strings.TrimSpace(s.draft.EndTime)
	if title == "" || startStr == "" || endStr == "" {
		return "", ErrMissingField
	}

	start, err := model.ResolveTime(startStr, s.loc, s.when)
	if err != nil {
		return "", ErrUnresolvableTime
	}
	end, err := model.ResolveTime(endStr, s.loc, s.when)
	if err != nil {
		return "", ErrUnresolvableTime
	}
	if end.Before(start) {
		return "", ErrEndBeforeStart
	}

	switch s.mode {
	case ModeEditing:
		id := s.editingID
		if err := s.grid.UpdateEvent(id, surface.Fields{
			Title:       title,
			Description: s.draft.Description,
			Start:       s.draft.StartTime,
			End:         s.draft.EndTime,
		}); err != nil {
			return "", fmt.Errorf("(*EditSession).Submit: %w", err)
		}
		s.reset()
		s.grid.ClearSelection()
		return id, nil

	default: // creating
		id := model.NewEventID(s.draft.StartTime, title)
		if s.grid.HasEvent(id) {
			// same start and title as an existing event; suffix instead
			// of overwriting or rejecting
			id = fmt.Sprintf("%s-%.8s", id, uuid.NewString())
			slog.Debug("event id collision, suffixed", "id", id)
		}
		if err := s.grid.AddEvent(model.Event{
			ID:          id,
			Title:       title,
			Description: s.draft.Description,
			Start:       s.draft.StartTime,
			End:         s.draft.EndTime,
		}); err != nil {
			return "", fmt.Errorf("(*EditSession).Submit: %w", err)
		}
		s.reset()
		s.grid.ClearSelection()
		return id, nil
	}
}

// Delete removes the event being edited and closes the dialog. Only
// valid in editing mode.
func (s *EditSession) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		return ErrNotEditing
	}
	if err := s.grid.RemoveEvent(s.editingID); err != nil {
		return fmt.Errorf("(*EditSession).Delete: %w", err)
	}
	s.reset()
	s.grid.ClearSelection()
	return nil
}

// caller must hold s.mu
func (s *EditSession) reset() {
	s.mode = ModeClosed
	s.editingID = ""
	s.draft = Draft{}
}
