// Package timefmt handles the two time regimes a timetable can live on:
// absolute calendar instants formatted by strftime patterns, and relative
// offsets expressed as a signed count of a fixed unit (e.g. "+M" minutes).
//
// A format spec is one of:
//   - the literal "infer", which callers must resolve via Infer before use,
//   - "+S", "+M", "+H" or "+D" for relative tables,
//   - any strftime pattern, e.g. "%d.%m.%Y %H:%M", for absolute tables.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ncruces/go-strftime"
)

// Sentinel errors for format resolution and time parsing.
var (
	// ErrNoFormatMatch is returned by Infer when no known pattern
	// fully matches the sample.
	ErrNoFormatMatch = errors.New("timefmt: no known pattern matches sample")

	// ErrBadTime is returned when a time string does not fully match the
	// active format. Partial matches never produce a best-effort value.
	ErrBadTime = errors.New("timefmt: time does not match format")

	// ErrAxisMismatch is returned when absolute and relative regimes are
	// mixed, e.g. formatting a relative value with an absolute pattern.
	ErrAxisMismatch = errors.New("timefmt: absolute/relative axis mismatch")

	// ErrInferUnresolved is returned by ParseSpec for the literal "infer";
	// the caller is expected to call Infer with a sample instead.
	ErrInferUnresolved = errors.New(`timefmt: "infer" must be resolved from a sample first`)
)

// SpecInfer is the spec string requesting pattern inference from a sample.
const SpecInfer = "infer"

// Axis tags which time regime a value or table lives on.
type Axis int

const (
	// Absolute values are calendar instants.
	Absolute Axis = iota
	// Relative values are signed offsets from an implicit zero.
	Relative
)

func (a Axis) String() string {
	if a == Relative {
		return "relative"
	}
	return "absolute"
}

// Value is one point on a time axis: either a calendar instant or a signed
// offset, tagged by Axis. The zero Value is the absolute zero time.
type Value struct {
	axis Axis
	abs  time.Time
	rel  time.Duration
}

// AbsoluteTime wraps a calendar instant as a Value.
func AbsoluteTime(t time.Time) Value {
	return Value{axis: Absolute, abs: t}
}

// RelativeTime wraps a signed offset as a Value.
func RelativeTime(d time.Duration) Value {
	return Value{axis: Relative, rel: d}
}

// Axis reports which regime the value belongs to.
func (v Value) Axis() Axis { return v.axis }

// String renders the value for diagnostics only; table output goes through
// Spec.Format.
func (v Value) String() string {
	if v.axis == Relative {
		return v.rel.String()
	}
	return v.abs.Format("2006-01-02 15:04:05")
}

// Abs returns the calendar instant. Meaningful only when Axis is Absolute.
func (v Value) Abs() time.Time { return v.abs }

// Rel returns the offset. Meaningful only when Axis is Relative.
func (v Value) Rel() time.Duration { return v.rel }

// Equal reports whether two values are the same point on the same axis.
func (v Value) Equal(o Value) bool {
	if v.axis != o.axis {
		return false
	}
	if v.axis == Relative {
		return v.rel == o.rel
	}
	return v.abs.Equal(o.abs)
}

// Compare orders two values on the same axis: -1 if v is earlier, 0 if
// equal, +1 if later. Comparing across axes is meaningless; callers must
// only compare values from the same table.
func (v Value) Compare(o Value) int {
	if v.axis == Relative {
		switch {
		case v.rel < o.rel:
			return -1
		case v.rel > o.rel:
			return 1
		}
		return 0
	}
	return v.abs.Compare(o.abs)
}

// Add shifts the value by d along its own axis.
func (v Value) Add(d time.Duration) Value {
	if v.axis == Relative {
		return RelativeTime(v.rel + d)
	}
	return AbsoluteTime(v.abs.Add(d))
}

// Sub returns the offset from o to v. Both values must share an axis.
func (v Value) Sub(o Value) time.Duration {
	if v.axis == Relative {
		return v.rel - o.rel
	}
	return v.abs.Sub(o.abs)
}

// WithBase reinterprets a relative value as base plus the offset, producing
// an absolute value. Absolute values cannot be rebased.
func (v Value) WithBase(base time.Time) (Value, error) {
	if v.axis == Absolute {
		return Value{}, fmt.Errorf("%w: cannot set base of absolute time", ErrAxisMismatch)
	}
	return AbsoluteTime(base.Add(v.rel)), nil
}

// relUnits maps the unit code of a relative spec ("+M" etc.) to its scale.
var relUnits = map[byte]time.Duration{
	'S': time.Second,
	'M': time.Minute,
	'H': time.Hour,
	'D': 24 * time.Hour,
}

// knownPatterns is the fixed, ordered list Infer tries. Longer patterns come
// first so a date-and-time sample never half-matches a date-only pattern.
var knownPatterns = []string{
	"%d.%m.%Y %H:%M:%S",
	"%d.%m.%Y %H:%M",
	"%Y-%m-%d %H:%M:%S",
	"%Y-%m-%dT%H:%M:%S",
	"%Y-%m-%d %H:%M",
	"%Y-%m-%dT%H:%M",
	"%d/%m/%Y %H:%M",
	"%d.%m.%Y",
	"%Y-%m-%d",
	"%H:%M:%S",
	"%H:%M",
}

// Spec is a resolved time format: an absolute strftime pattern or a
// relative unit.
type Spec struct {
	raw  string
	axis Axis
	unit time.Duration
}

// ParseSpec validates a raw spec string. The literal "infer" is rejected
// with ErrInferUnresolved; use Infer with a sample instead.
func ParseSpec(raw string) (Spec, error) {
	if raw == SpecInfer {
		return Spec{}, ErrInferUnresolved
	}
	if raw == "" {
		return Spec{}, errors.New("timefmt: empty format spec")
	}
	if raw[0] == '+' {
		if len(raw) != 2 {
			return Spec{}, fmt.Errorf("timefmt: bad relative spec %q (want +S, +M, +H or +D)", raw)
		}
		unit, ok := relUnits[raw[1]]
		if !ok {
			return Spec{}, fmt.Errorf("timefmt: unknown relative unit %q", raw[1:])
		}
		return Spec{raw: raw, axis: Relative, unit: unit}, nil
	}
	if _, err := strftime.Layout(raw); err != nil {
		return Spec{}, fmt.Errorf("timefmt: bad pattern %q: %w", raw, err)
	}
	return Spec{raw: raw, axis: Absolute}, nil
}

// Infer deduces an absolute Spec from a representative sample by trying the
// known patterns in order and returning the first full match.
func Infer(sample string) (Spec, error) {
	for _, p := range knownPatterns {
		if _, err := strftime.Parse(p, sample); err == nil {
			return Spec{raw: p, axis: Absolute}, nil
		}
	}
	return Spec{}, fmt.Errorf("%w: %q", ErrNoFormatMatch, sample)
}

// String returns the raw spec string.
func (s Spec) String() string { return s.raw }

// Axis reports whether the spec produces absolute or relative values.
func (s Spec) Axis() Axis { return s.axis }

// Unit returns the scale of a relative spec, or zero for absolute specs.
func (s Spec) Unit() time.Duration { return s.unit }

// Parse converts one time field into a Value. The whole string must match;
// trailing or missing text fails with ErrBadTime.
func (s Spec) Parse(src string) (Value, error) {
	if s.axis == Relative {
		n, err := strconv.ParseFloat(src, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a %s count", ErrBadTime, src, s.raw)
		}
		return RelativeTime(time.Duration(n * float64(s.unit))), nil
	}
	t, err := strftime.Parse(s.raw, src)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q does not match %q", ErrBadTime, src, s.raw)
	}
	return AbsoluteTime(t), nil
}

// Format renders a Value as text, the inverse of Parse. The spec and value
// must share an axis.
func (s Spec) Format(v Value) (string, error) {
	if v.axis != s.axis {
		return "", fmt.Errorf("%w: %s value under %s spec %q", ErrAxisMismatch, v.axis, s.axis, s.raw)
	}
	if s.axis == Relative {
		n := float64(v.rel) / float64(s.unit)
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return strftime.Format(s.raw, v.abs), nil
}
