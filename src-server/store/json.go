package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"caldeck/src-server/model"
)

// storageKey mirrors the browser widget's localStorage key; the file
// holds the same JSON-encoded array of event records.
const storageKey = "events"

// JSONStore keeps the collection as a single JSON array on disk,
// <dataDir>/events.json.
type JSONStore struct {
	dataDir string
}

func NewJSONStore(dataDir string) *JSONStore {
	return &JSONStore{dataDir: dataDir}
}

func (s *JSONStore) path() string {
	return filepath.Join(s.dataDir, storageKey+".json")
}

func (s *JSONStore) Load(ctx context.Context) ([]model.Event, error) {
	raw, err := os.ReadFile(s.path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return []model.Event{}, nil
	case err != nil:
		return []model.Event{}, fmt.Errorf("(*JSONStore).Load: %w", err)
	}

	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return []model.Event{}, fmt.Errorf("(*JSONStore).Load: can't parse %s: %w", s.path(), err)
	}

	// drop records a previous run (or a hand edit) left without the
	// required fields instead of loading them verbatim
	valid := make([]model.Event, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			slog.Warn("dropping malformed stored event", "id", event.ID, "error", err)
			continue
		}
		valid = append(valid, event)
	}
	return valid, nil
}

func (s *JSONStore) Save(ctx context.Context, events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("(*JSONStore).Save: %w", err)
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("(*JSONStore).Save: %w", err)
	}
	if err := os.WriteFile(s.path(), raw, 0o644); err != nil {
		return fmt.Errorf("(*JSONStore).Save: %w", err)
	}
	return nil
}
