package timetable

import (
	"strings"

	"ttab/internal/timefmt"
)

// Render writes the table back as tab-delimited text, the inverse of Parse.
// One line per distinct time point in current entry order (so it reflects a
// preceding Sort), columns in table-wide first-seen label order, each ending
// in a newline. Cells render as "Name=Value", or bare "Name" for label-only
// entries, using the current display names.
func (t *Timetable) Render(spec timefmt.Spec) (string, error) {
	var b strings.Builder
	for _, row := range t.Rows() {
		ts, err := spec.Format(row.Time)
		if err != nil {
			return "", err
		}
		b.WriteString(ts)

		for _, key := range t.order {
			for _, e := range row.Entries {
				if e.Label != key {
					continue
				}
				b.WriteByte('\t')
				b.WriteString(t.labels[key].Name)
				if e.Value != "" {
					b.WriteByte('=')
					b.WriteString(e.Value)
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
