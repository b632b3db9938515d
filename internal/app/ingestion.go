package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"meal-scheduler/internal/schedule"

	"gopkg.in/yaml.v3"
)

// ScheduleFile is the YAML layout accepted by ImportSchedule:
//
//	schedule:
//	  - className: Math
//	    day: Monday
//	    startTime: "09:00"
//	    endTime: "10:00"
type ScheduleFile struct {
	Schedule []ScheduleFileEntry `yaml:"schedule"`
}

// ScheduleFileEntry is one class in a ScheduleFile.
type ScheduleFileEntry struct {
	ClassName string `yaml:"className"`
	Day       string `yaml:"day"`
	StartTime string `yaml:"startTime"`
	EndTime   string `yaml:"endTime"`
}

// Creator persists schedule entries.
type Creator interface {
	Create(ctx context.Context, entry schedule.Entry) (string, error)
}

// ImportSchedule validates every entry of a YAML schedule, then creates
// them in file order. Nothing is written when any entry is invalid.
func ImportSchedule(ctx context.Context, creator Creator, r io.Reader) ([]string, error) {
	var file ScheduleFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode schedule file: %w", err)
	}

	entries := make([]schedule.Entry, 0, len(file.Schedule))
	for i, item := range file.Schedule {
		entry, err := schedule.ParseEntry(item.ClassName, item.Day, item.StartTime, item.EndTime)
		if err == nil {
			err = entry.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		id, err := creator.Create(ctx, entry)
		if err != nil {
			return ids, fmt.Errorf("failed to create %s on %s: %w", entry.Label, entry.Day, err)
		}
		ids = append(ids, id)
	}

	log.Printf("Imported %d schedule entries", len(ids))
	return ids, nil
}
