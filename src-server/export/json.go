// Package export serializes the currently filtered event sequence for
// download. All exporters are stateless; callers pass in the filtered,
// not the full, collection so exports reflect the current search.
package export

import (
	"encoding/json"
	"fmt"

	"caldeck/src-server/model"
)

const JSONFilename = "events.json"

// ToJSON is a direct structural serialization of the event records,
// same shape as the stored collection.
func ToJSON(events []model.Event) ([]byte, error) {
	if events == nil {
		events = []model.Event{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("ToJSON: %w", err)
	}
	return raw, nil
}
