package schedule

import (
	"errors"
	"fmt"
	"strings"

	"meal-scheduler/internal/realtime"
)

// ErrInvalidEntry is returned when an entry cannot be persisted.
var ErrInvalidEntry = errors.New("invalid schedule entry")

// Entry is a single schedule slot. Synthetic entries are produced by gap
// filling and are never persisted.
type Entry struct {
	ID        string `json:"id"`
	Label     string `json:"className"`
	Day       Day    `json:"day"`
	Start     Clock  `json:"startTime"`
	End       Clock  `json:"endTime"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// ParseEntry builds an entry from raw field values.
func ParseEntry(label, day, start, end string) (Entry, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: startTime: %v", ErrInvalidEntry, err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: endTime: %v", ErrInvalidEntry, err)
	}
	return Entry{
		Label: strings.TrimSpace(label),
		Day:   ParseDay(day),
		Start: s,
		End:   e,
	}, nil
}

// Validate checks an entry before it is written to the store.
func (e Entry) Validate() error {
	if e.Label == "" {
		return fmt.Errorf("%w: className is required", ErrInvalidEntry)
	}
	if !e.Day.Known() {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidEntry, e.Day)
	}
	if e.Start >= e.End {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidEntry, e.Start, e.End)
	}
	return nil
}

// Fields returns the persisted record layout of e.
func (e Entry) Fields() realtime.Fields {
	return realtime.Fields{
		"className": e.Label,
		"day":       string(e.Day),
		"startTime": e.Start.String(),
		"endTime":   e.End.String(),
	}
}

// EntryFromRecord decodes a stored record. Stored data is not validated
// beyond what is needed to order it: any day value is accepted.
func EntryFromRecord(rec realtime.Record) (Entry, error) {
	label, _ := rec.Fields["className"].(string)
	day, _ := rec.Fields["day"].(string)
	start, _ := rec.Fields["startTime"].(string)
	end, _ := rec.Fields["endTime"].(string)

	entry, err := ParseEntry(label, day, start, end)
	if err != nil {
		return Entry{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	entry.ID = rec.ID
	return entry, nil
}
