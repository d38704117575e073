package timetable

import (
	"errors"
	"fmt"
	"strings"

	"ttab/internal/timefmt"
)

// ParseError identifies the offending line when table construction fails.
type ParseError struct {
	Line int    // 1-based line number
	Text string // raw line text
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timetable: line %d: %v (%q)", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse builds a table from tab-delimited text. Each line is
//
//	TIME\tFIELD\tFIELD...
//
// where TIME is parsed by spec and each field is either "key=value" or a
// bare label. Blank lines and malformed fields fail with a *ParseError
// carrying the line number; empty input yields an empty table.
func Parse(src string, spec timefmt.Spec) (*Timetable, error) {
	t := New()
	if src == "" {
		return t, nil
	}

	for i, line := range strings.Split(strings.TrimSuffix(src, "\n"), "\n") {
		lineno := i + 1
		if strings.TrimSpace(line) == "" {
			return nil, &ParseError{Line: lineno, Text: line, Err: errors.New("blank line")}
		}

		fields := strings.Split(line, "\t")
		tv, err := spec.Parse(fields[0])
		if err != nil {
			return nil, &ParseError{Line: lineno, Text: line, Err: err}
		}

		if len(fields) == 1 {
			return nil, &ParseError{Line: lineno, Text: line, Err: errors.New("no entries after time field")}
		}

		for _, field := range fields[1:] {
			key, value, _ := strings.Cut(field, "=")
			if key == "" {
				return nil, &ParseError{Line: lineno, Text: line, Err: errors.New("empty field")}
			}
			if err := t.Add(tv, key, value); err != nil {
				return nil, &ParseError{Line: lineno, Text: line, Err: err}
			}
		}
	}

	return t, nil
}
