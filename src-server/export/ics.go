package export

import (
	"fmt"
	"time"

	"caldeck/src-server/model"

	ics "github.com/arran4/golang-ical"
)

const ICSFilename = "events.ics"

// ToICS serializes the filtered sequence as an iCalendar feed so other
// calendar apps can import the current view. Events whose dates don't
// resolve are skipped rather than emitted half-formed.
func ToICS(events []model.Event, loc *time.Location) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//caldeck//calendar export//EN")

	now := time.Now()
	for _, event := range events {
		start, err := model.ResolveTime(event.Start, loc, nil)
		if err != nil {
			continue
		}
		end, err := model.ResolveTime(event.End, loc, nil)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(event.ID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(event.Title)
		if event.Description != "" {
			ve.SetDescription(event.Description)
		}
	}

	serialized := cal.Serialize()
	if serialized == "" {
		return nil, fmt.Errorf("ToICS: empty serialization")
	}
	return []byte(serialized), nil
}
