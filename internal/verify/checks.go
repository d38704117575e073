package verify

import (
	"fmt"
	"strings"

	"ttab/internal/timetable"
)

// Dimensions fails when two rows (entries grouped by time point) carry a
// different number of populated columns.
func Dimensions() Check {
	return Check{Name: "dimensions", Fn: func(t *timetable.Timetable) error {
		rows := t.Rows()
		if len(rows) == 0 {
			return nil
		}
		want := len(rows[0].Entries)
		for _, row := range rows[1:] {
			if got := len(row.Entries); got != want {
				return fmt.Errorf("expected %d columns but got %d (row at %s)", want, got, row.Time)
			}
		}
		return nil
	}}
}

// Labels fails when an entry references a key missing from the registry
// (possible only through manual mutation) or when a display name contains a
// tab, which would corrupt the rendered output.
func Labels() Check {
	return Check{Name: "labels", Fn: func(t *timetable.Timetable) error {
		for _, e := range t.Entries {
			l, ok := t.Label(e.Label)
			if !ok {
				return fmt.Errorf("entry at %s references unregistered label %q", e.Time, e.Label)
			}
			if strings.Contains(l.Name, "\t") {
				return fmt.Errorf("tab character in label name %q", l.Name)
			}
		}
		return nil
	}}
}

// Conflicts fails when two entries share a label key and their time spans
// overlap. Point entries are degenerate intervals, so overlap means equal
// time points.
func Conflicts() Check {
	return Check{Name: "conflicts", Fn: func(t *timetable.Timetable) error {
		seen := make(map[string][]timetable.Entry)
		for _, e := range t.Entries {
			for _, prev := range seen[e.Label] {
				if prev.Time.Equal(e.Time) {
					return fmt.Errorf("label %q scheduled twice at %s", e.Label, e.Time)
				}
			}
			seen[e.Label] = append(seen[e.Label], e)
		}
		return nil
	}}
}

// Unique fails when two entries are fully identical: same label, time point
// and payload. Passes on an empty table.
func Unique() Check {
	return Check{Name: "unique", Fn: func(t *timetable.Timetable) error {
		for i, a := range t.Entries {
			for _, b := range t.Entries[i+1:] {
				if a.Label == b.Label && a.Value == b.Value && a.Time.Equal(b.Time) {
					return fmt.Errorf("duplicate entry: label %q at %s (%q)", a.Label, a.Time, a.Value)
				}
			}
		}
		return nil
	}}
}

// Count fails when a selected label's entry count differs from want.
// The expected multiplicity is explicit; the CLI defaults it to one entry
// per selected label.
func Count(keys []string, want int) Check {
	return Check{Name: "count", Fn: func(t *timetable.Timetable) error {
		counts := make(map[string]int, len(keys))
		for _, k := range keys {
			counts[k] = 0
		}
		for _, e := range t.Entries {
			if _, ok := counts[e.Label]; ok {
				counts[e.Label]++
			}
		}
		for _, k := range keys {
			if counts[k] != want {
				return fmt.Errorf("label %q appears %d times, want %d", k, counts[k], want)
			}
		}
		return nil
	}}
}
