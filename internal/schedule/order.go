package schedule

import (
	"cmp"
	"slices"
)

// MinGapMinutes is the idle time a gap must exceed to be filled.
const MinGapMinutes = 15

// Gap is the idle interval between two adjacent entries on the same day.
type Gap struct {
	Day     Day
	Before  Entry
	After   Entry
	Minutes int
}

// Key identifies the gap by the entries around it, so a fill can be placed
// regardless of the order fills complete in.
func (g Gap) Key() string {
	return gapKey(g.Day, g.Before.ID, g.After.ID)
}

func gapKey(day Day, beforeID, afterID string) string {
	return string(day) + "|" + beforeID + "|" + afterID
}

// NormalizeAndOrder returns the entries sorted by weekday position, then
// start time. Ties keep their input order.
func NormalizeAndOrder(entries []Entry) []Entry {
	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b Entry) int {
		if c := cmp.Compare(a.Day.Position(), b.Day.Position()); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})
	return ordered
}

// DetectGaps reports every gap longer than MinGapMinutes between adjacent
// entries of an ordered sequence that share a day.
func DetectGaps(ordered []Entry) []Gap {
	var gaps []Gap
	for i := 1; i < len(ordered); i++ {
		a, b := ordered[i-1], ordered[i]
		if a.Day != b.Day {
			continue
		}
		minutes := int(b.Start - a.End)
		if minutes <= MinGapMinutes {
			continue
		}
		gaps = append(gaps, Gap{Day: a.Day, Before: a, After: b, Minutes: minutes})
	}
	return gaps
}

// Splice inserts each fill immediately after its predecessor. Fills are
// keyed by Gap.Key; a fill whose two entries are no longer adjacent is
// dropped.
func Splice(ordered []Entry, fills map[string]Entry) []Entry {
	if len(fills) == 0 {
		return slices.Clone(ordered)
	}

	out := make([]Entry, 0, len(ordered)+len(fills))
	for i, e := range ordered {
		out = append(out, e)
		if i+1 == len(ordered) {
			break
		}
		next := ordered[i+1]
		if e.Day != next.Day {
			continue
		}
		if fill, ok := fills[gapKey(e.Day, e.ID, next.ID)]; ok {
			out = append(out, fill)
		}
	}
	return out
}

func filterDay(entries []Entry, day Day) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}
