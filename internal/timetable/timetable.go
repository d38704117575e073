// Package timetable implements the tab-delimited timetable: an ordered
// sequence of scheduled entries over named label columns, on a single
// absolute or relative time axis.
//
// A table's axis is homogeneous at all times. Transforms that change the
// axis (Shift, Normalize) convert every entry together and return a fresh
// table; the input is never touched.
package timetable

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"ttab/internal/timefmt"
)

// ErrUnknownLabel is returned by Rename for a key not in the registry.
var ErrUnknownLabel = errors.New("timetable: unknown label")

// Label is a named column. Key identifies it for the table's lifetime;
// Name is the mutable display text used only for rendering.
type Label struct {
	Key  string
	Name string
}

// Entry is one scheduled cell: a label key, a time point, and a payload.
// The payload is empty for label-only cells (input fields without "=").
type Entry struct {
	Label string
	Time  timefmt.Value
	Value string
}

// Timetable is the aggregate: ordered entries plus the label registry.
// Every entry's label key has a registry record and vice versa.
type Timetable struct {
	Entries []Entry

	labels  map[string]*Label
	order   []string // first-seen key order, drives column order
	axis    timefmt.Axis
	axisSet bool
}

// New returns an empty table. The axis is adopted from the first entry.
func New() *Timetable {
	return &Timetable{labels: make(map[string]*Label)}
}

// Axis reports the table's axis tag; ok is false while the table is empty.
func (t *Timetable) Axis() (axis timefmt.Axis, ok bool) {
	return t.axis, t.axisSet
}

// Add appends one entry, registering its label key on first sight.
// The entry's axis must agree with the table's.
func (t *Timetable) Add(tv timefmt.Value, key, value string) error {
	if t.axisSet && tv.Axis() != t.axis {
		return fmt.Errorf("%w: %s entry in %s table", timefmt.ErrAxisMismatch, tv.Axis(), t.axis)
	}
	t.axis = tv.Axis()
	t.axisSet = true

	if _, ok := t.labels[key]; !ok {
		t.labels[key] = &Label{Key: key, Name: key}
		t.order = append(t.order, key)
	}
	t.Entries = append(t.Entries, Entry{Label: key, Time: tv, Value: value})
	return nil
}

// Label looks up a registry record by key.
func (t *Timetable) Label(key string) (*Label, bool) {
	l, ok := t.labels[key]
	return l, ok
}

// Labels returns the registry records in first-seen order.
func (t *Timetable) Labels() []*Label {
	out := make([]*Label, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.labels[key])
	}
	return out
}

// Rename changes a label's display name. The key never changes, so entries
// keep referencing the same record. Repeated renames overwrite: last write
// wins. Unknown keys fail with ErrUnknownLabel.
func (t *Timetable) Rename(key, name string) error {
	l, ok := t.labels[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, key)
	}
	l.Name = name
	return nil
}

// Sort orders entries by time point ascending, in place. The sort is
// stable: ties keep their input order.
func (t *Timetable) Sort() {
	sort.SliceStable(t.Entries, func(i, j int) bool {
		return t.Entries[i].Time.Compare(t.Entries[j].Time) < 0
	})
}

// Shift converts a relative table to absolute: every offset becomes
// base plus that offset. Shifting an absolute table fails with
// timefmt.ErrAxisMismatch. The receiver is unchanged.
func (t *Timetable) Shift(base time.Time) (*Timetable, error) {
	if t.axisSet && t.axis == timefmt.Absolute {
		return nil, fmt.Errorf("%w: table is already absolute", timefmt.ErrAxisMismatch)
	}
	out := New()
	for _, e := range t.Entries {
		tv, err := e.Time.WithBase(base)
		if err != nil {
			return nil, err
		}
		if err := out.Add(tv, e.Label, e.Value); err != nil {
			return nil, err
		}
	}
	out.copyNames(t)
	return out, nil
}

// Normalize rebases the table onto a relative axis whose zero is the
// earliest entry. Works from either axis; normalizing twice is a no-op.
// The receiver is unchanged.
func (t *Timetable) Normalize() *Timetable {
	out := New()
	if len(t.Entries) == 0 {
		return out
	}

	min := t.Entries[0].Time
	for _, e := range t.Entries[1:] {
		if e.Time.Compare(min) < 0 {
			min = e.Time
		}
	}

	for _, e := range t.Entries {
		// Add never fails here: every value lands on the relative axis.
		_ = out.Add(timefmt.RelativeTime(e.Time.Sub(min)), e.Label, e.Value)
	}
	out.copyNames(t)
	return out
}

// Combine merges two tables into a fresh one: a's entries then b's, and the
// union of both registries (b's display name wins on a shared key).
// Duplicate and overlapping labels are legal; the verifier judges them.
// Both tables must share an axis; an empty table combines with anything.
func Combine(a, b *Timetable) (*Timetable, error) {
	if a.axisSet && b.axisSet && a.axis != b.axis {
		return nil, fmt.Errorf("%w: combining %s and %s tables", timefmt.ErrAxisMismatch, a.axis, b.axis)
	}
	out := New()
	for _, src := range []*Timetable{a, b} {
		for _, e := range src.Entries {
			if err := out.Add(e.Time, e.Label, e.Value); err != nil {
				return nil, err
			}
		}
	}
	out.copyNames(a)
	out.copyNames(b)
	return out, nil
}

// copyNames carries display names over from src for keys present in t.
func (t *Timetable) copyNames(src *Timetable) {
	for key, l := range src.labels {
		if dst, ok := t.labels[key]; ok {
			dst.Name = l.Name
		}
	}
}

// Row groups the entries sharing one time point.
type Row struct {
	Time    timefmt.Value
	Entries []Entry
}

// Rows groups entries by equal time point, in order of first occurrence.
// Rendering and the dimension check both work row-wise.
func (t *Timetable) Rows() []Row {
	var rows []Row
	for _, e := range t.Entries {
		placed := false
		for i := range rows {
			if rows[i].Time.Equal(e.Time) {
				rows[i].Entries = append(rows[i].Entries, e)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, Row{Time: e.Time, Entries: []Entry{e}})
		}
	}
	return rows
}
