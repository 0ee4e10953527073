package model

import (
	"fmt"

	"github.com/uptrace/bun"
)

// Event is a single calendar entry. The JSON shape is exactly what the
// browser grid consumes and what the flat-file store persists, so the
// stored value stays a bare array of these records.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk" json:"id"`            // required
	Title       string `bun:"title,notnull" json:"title"` // required
	Description string `bun:"description" json:"description"`

	// Start and end are kept as the grid handed them over (ISO-8601-ish
	// strings), not re-encoded, so a load-then-save round trip preserves
	// every field byte for byte.
	Start string `bun:"start_date,notnull" json:"start"` // required
	End   string `bun:"end_date,notnull" json:"end"`     // required

	// ordering within the collection, only the sqlite store needs it
	Position int `bun:"position,notnull" json:"-"`
}

func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Validate: event id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Validate: title is blank")
	case e.Start == "":
		return fmt.Errorf("(*Event).Validate: start date is blank")
	}
	return nil
}

// NewEventID derives the id the grid widget historically used for fresh
// events. Collisions are possible; the edit session suffixes a random
// fragment when one is detected.
func NewEventID(startStr, title string) string {
	return fmt.Sprintf("%s-%s", startStr, title)
}
