package schedule

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEntry(t *testing.T, id, label, day, start, end string) Entry {
	t.Helper()
	e, err := ParseEntry(label, day, start, end)
	require.NoError(t, err, "ParseEntry(%s)", id)
	e.ID = id
	return e
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestNormalizeAndOrder(t *testing.T) {
	entries := []Entry{
		mustEntry(t, "fri", "Art", "Friday", "08:00", "09:00"),
		mustEntry(t, "mon-late", "Physics", "monday", "10:30", "11:30"),
		mustEntry(t, "sun", "Gym", "Sunday", "18:00", "19:00"),
		mustEntry(t, "mon-early", "Math", "Monday", "09:00", "10:00"),
		mustEntry(t, "sat", "Chess", "Saturday", "07:00", "08:00"),
		mustEntry(t, "odd", "Mystery", "Funday", "12:00", "13:00"),
		mustEntry(t, "mon-tie", "History", "Monday", "09:00", "09:45"),
	}

	ordered := NormalizeAndOrder(entries)

	t.Run("Order", func(t *testing.T) {
		want := []string{"odd", "sun", "mon-early", "mon-tie", "mon-late", "fri", "sat"}
		assert.Equal(t, want, ids(ordered))
	})

	t.Run("Idempotent", func(t *testing.T) {
		assert.Equal(t, ordered, NormalizeAndOrder(ordered))
	})

	t.Run("NoDropsOrDuplicates", func(t *testing.T) {
		assert.ElementsMatch(t, ids(entries), ids(ordered))
	})

	t.Run("InputUntouched", func(t *testing.T) {
		assert.Equal(t, "fri", entries[0].ID)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, NormalizeAndOrder(nil))
	})
}

func TestDetectGaps(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		wantGaps []int
	}{
		{
			name: "ThirtyMinutes",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "09:00", "10:00"),
				mustEntry(t, "b", "Physics", "Monday", "10:30", "11:30"),
			},
			wantGaps: []int{30},
		},
		{
			name: "ExactlyFifteenIsIgnored",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "09:00", "10:00"),
				mustEntry(t, "b", "Physics", "Monday", "10:15", "11:00"),
			},
		},
		{
			name: "SixteenQualifies",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "09:00", "10:00"),
				mustEntry(t, "b", "Physics", "Monday", "10:16", "11:00"),
			},
			wantGaps: []int{16},
		},
		{
			name: "Adjacent",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "09:00", "10:00"),
				mustEntry(t, "b", "Physics", "Monday", "10:00", "11:00"),
			},
		},
		{
			name: "Overlapping",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "09:00", "11:00"),
				mustEntry(t, "b", "Physics", "Monday", "10:00", "12:00"),
			},
		},
		{
			name: "DifferentDays",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "09:00", "10:00"),
				mustEntry(t, "b", "Physics", "Tuesday", "13:00", "14:00"),
			},
		},
		{
			name: "Several",
			entries: []Entry{
				mustEntry(t, "a", "Math", "Monday", "08:00", "09:00"),
				mustEntry(t, "b", "Physics", "Monday", "10:00", "11:00"),
				mustEntry(t, "c", "Art", "Monday", "11:10", "12:00"),
				mustEntry(t, "d", "Gym", "Monday", "13:00", "14:00"),
			},
			wantGaps: []int{60, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gaps := DetectGaps(NormalizeAndOrder(tt.entries))
			var got []int
			for _, g := range gaps {
				got = append(got, g.Minutes)
			}
			assert.Equal(t, tt.wantGaps, got)
		})
	}
}

func TestSplice(t *testing.T) {
	a := mustEntry(t, "a", "Math", "Monday", "09:00", "10:00")
	b := mustEntry(t, "b", "Physics", "Monday", "10:30", "11:30")
	c := mustEntry(t, "c", "Art", "Tuesday", "09:00", "10:00")
	ordered := []Entry{a, b, c}

	fill := Entry{ID: "synthetic:x", Label: "Food: Salad", Day: Monday, Start: a.End, End: b.Start, Synthetic: true}

	t.Run("InsertsAfterPredecessor", func(t *testing.T) {
		got := Splice(ordered, map[string]Entry{gapKey(Monday, "a", "b"): fill})
		assert.Equal(t, []string{"a", "synthetic:x", "b", "c"}, ids(got))
	})

	t.Run("StaleFillDropped", func(t *testing.T) {
		got := Splice([]Entry{a, c}, map[string]Entry{gapKey(Monday, "a", "b"): fill})
		assert.Equal(t, []string{"a", "c"}, ids(got))
	})

	t.Run("NoFillsCopies", func(t *testing.T) {
		got := Splice(ordered, nil)
		assert.True(t, slices.Equal(ordered, got))
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:05", want: 9*60 + 5},
		{in: "23:59:30", want: 23*60 + 59},
		{in: " 00:00 ", want: 0},
		{in: "24:00", wantErr: true},
		{in: "9", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "09:05", Clock(9*60+5).String())
}

func TestEntryValidate(t *testing.T) {
	assert.NoError(t, mustEntry(t, "", "Math", "Monday", "09:00", "10:00").Validate())

	for name, e := range map[string]Entry{
		"NoLabel":    mustEntry(t, "", " ", "Monday", "09:00", "10:00"),
		"UnknownDay": mustEntry(t, "", "Math", "Funday", "09:00", "10:00"),
		"Backwards":  mustEntry(t, "", "Math", "Monday", "10:00", "09:00"),
	} {
		assert.ErrorIs(t, e.Validate(), ErrInvalidEntry, name)
	}
}
