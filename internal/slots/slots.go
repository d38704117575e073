// Package slots quantizes timetable entries into bucketed time intervals.
//
// A slot is a closed interval plus a granularity. Fitting reassigns each
// matching entry's time point to the nearest multiple of the granularity
// measured from the interval start; nothing else about the entry changes.
package slots

import (
	"fmt"
	"time"

	"ttab/internal/timefmt"
	"ttab/internal/timetable"
)

// Slot is one fitting window: entries inside [Start, End] (inclusive both
// ends) snap to multiples of Step from Start.
type Slot struct {
	Start timefmt.Value
	End   timefmt.Value
	Step  time.Duration
}

func (s Slot) contains(v timefmt.Value) bool {
	return s.Start.Compare(v) <= 0 && v.Compare(s.End) <= 0
}

// Fit re-buckets the table's entries in place. Slots are tried in the order
// given and the first window containing an entry wins, even when a later
// window would fit it better — callers own the ordering of overlapping
// windows. Entries outside every window are untouched. Fitting never adds,
// drops, or relabels entries.
func Fit(t *timetable.Timetable, defs []Slot) error {
	axis, ok := t.Axis()
	if !ok || len(defs) == 0 {
		return nil
	}

	for i, s := range defs {
		if s.Start.Axis() != s.End.Axis() {
			return fmt.Errorf("%w: slot %d mixes absolute and relative bounds", timefmt.ErrAxisMismatch, i+1)
		}
		if s.Start.Axis() != axis {
			return fmt.Errorf("%w: %s slot %d over %s table", timefmt.ErrAxisMismatch, s.Start.Axis(), i+1, axis)
		}
		if s.Step <= 0 {
			return fmt.Errorf("slots: slot %d has non-positive step %v", i+1, s.Step)
		}
		if s.End.Compare(s.Start) < 0 {
			return fmt.Errorf("slots: slot %d ends before it starts", i+1)
		}
	}

	for i := range t.Entries {
		for _, s := range defs {
			if !s.contains(t.Entries[i].Time) {
				continue
			}
			off := t.Entries[i].Time.Sub(s.Start)
			// Round half up: off is non-negative inside the window.
			n := int64((off + s.Step/2) / s.Step)
			t.Entries[i].Time = s.Start.Add(time.Duration(n) * s.Step)
			break
		}
	}
	return nil
}
