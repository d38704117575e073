package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ttab/internal/config"
	"ttab/internal/diag"
	"ttab/internal/slots"
	"ttab/internal/timefmt"
	"ttab/internal/timetable"
)

// pipeline carries the state of one command chain between steps: the
// resolved input format and the current table. State is threaded explicitly
// from step to step; the shell keeps no package-level table or format.
type pipeline struct {
	spec  timefmt.Spec
	table *timetable.Timetable
	diag  *diag.Printer
}

// input is one raw text blob plus its origin, for error context.
type input struct {
	name string
	text string
}

// readInputs loads the given files, or stdin when no files are named.
func readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: "stdin", text: string(data)}}, nil
	}

	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, input{name: path, text: string(data)})
	}
	return inputs, nil
}

// firstTimeField extracts the first line's leading tab field from the first
// non-empty blob, as the sample for format inference.
func firstTimeField(inputs []input) (string, bool) {
	for _, in := range inputs {
		line, _, _ := strings.Cut(in.text, "\n")
		if line == "" {
			continue
		}
		field, _, _ := strings.Cut(line, "\t")
		return field, true
	}
	return "", false
}

// resolveSpec turns the configured format string into a Spec, running
// inference against the input when it is the literal "infer".
func resolveSpec(raw string, inputs []input, d *diag.Printer) (timefmt.Spec, error) {
	if raw == "" {
		raw = timefmt.SpecInfer
	}
	if raw != timefmt.SpecInfer {
		return timefmt.ParseSpec(raw)
	}

	sample, ok := firstTimeField(inputs)
	if !ok {
		return timefmt.Spec{}, errors.New("cannot infer a time format from empty input")
	}
	spec, err := timefmt.Infer(sample)
	if err != nil {
		return timefmt.Spec{}, err
	}
	d.Infof("inferred time format %q from %q", spec, sample)
	return spec, nil
}

// newPipeline reads and parses the inputs, combining multiple files into
// one table.
func newPipeline(cfg config.Config, args []string) (*pipeline, error) {
	d := diag.New(cfg.Quiet, !cfg.NoColor)

	inputs, err := readInputs(args)
	if err != nil {
		return nil, err
	}
	spec, err := resolveSpec(cfg.TimeFormat, inputs, d)
	if err != nil {
		return nil, err
	}

	table := timetable.New()
	for _, in := range inputs {
		t, err := timetable.Parse(in.text, spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.name, err)
		}
		table, err = timetable.Combine(table, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.name, err)
		}
	}

	return &pipeline{spec: spec, table: table, diag: d}, nil
}

// transformFlags are the table transforms shared by render, view and watch.
// They apply in a fixed order: rename, fit, base, normalize, sort.
type transformFlags struct {
	renames   []string
	fit       string
	base      string
	normalize bool
	sort      bool
}

func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("rename", nil, "rename a label: OLD=NEW (repeatable)")
	cmd.Flags().String("fit", "", "slot definition file (TOML) to quantize entries against")
	cmd.Flags().String("base", "", "base time converting a relative table to absolute")
	cmd.Flags().Bool("normalize", false, "rebase times so the earliest entry is zero")
	cmd.Flags().Bool("sort", false, "sort entries by time point")
}

func transformsFromFlags(cmd *cobra.Command) transformFlags {
	renames, _ := cmd.Flags().GetStringArray("rename")
	fit, _ := cmd.Flags().GetString("fit")
	base, _ := cmd.Flags().GetString("base")
	normalize, _ := cmd.Flags().GetBool("normalize")
	sortFlag, _ := cmd.Flags().GetBool("sort")
	return transformFlags{
		renames:   renames,
		fit:       fit,
		base:      base,
		normalize: normalize,
		sort:      sortFlag,
	}
}

// apply runs the requested transforms against the pipeline's table.
func (p *pipeline) apply(tf transformFlags) error {
	if err := p.applyRenames(tf.renames); err != nil {
		return err
	}
	if tf.fit != "" {
		defs, err := slots.Load(tf.fit, p.spec)
		if err != nil {
			return err
		}
		if err := slots.Fit(p.table, defs); err != nil {
			return err
		}
	}
	if tf.base != "" {
		if err := p.applyBase(tf.base); err != nil {
			return err
		}
	}
	if tf.normalize {
		p.table = p.table.Normalize()
	}
	if tf.sort {
		p.table.Sort()
	}
	return nil
}

// applyRenames applies OLD=NEW pairs in order. A later pair for the same key
// overwrites the earlier one; that is legal but usually a mistake, so it
// warns.
func (p *pipeline) applyRenames(pairs []string) error {
	renamed := make(map[string]string)
	for _, pair := range pairs {
		old, name, ok := strings.Cut(pair, "=")
		if !ok || old == "" || name == "" {
			return fmt.Errorf("bad --rename %q: want OLD=NEW", pair)
		}
		if prev, dup := renamed[old]; dup {
			p.diag.Warnf("label %q renamed more than once (%q, then %q); the last wins", old, prev, name)
		}
		if err := p.table.Rename(old, name); err != nil {
			return err
		}
		renamed[old] = name
	}
	return nil
}

// applyBase shifts a relative table onto the absolute axis. On an
// already-absolute table the shift is a warned no-op so a chain like
// parse-absolute → base → verify still succeeds.
func (p *pipeline) applyBase(raw string) error {
	if axis, ok := p.table.Axis(); ok && axis == timefmt.Absolute {
		p.diag.Warnf("table is already absolute; ignoring --base %q", raw)
		return nil
	}

	bspec := p.spec
	if bspec.Axis() != timefmt.Absolute {
		var err error
		bspec, err = timefmt.Infer(raw)
		if err != nil {
			return fmt.Errorf("--base: %w", err)
		}
	}
	v, err := bspec.Parse(raw)
	if err != nil {
		return fmt.Errorf("--base: %w", err)
	}

	shifted, err := p.table.Shift(v.Abs())
	if err != nil {
		return err
	}
	p.table = shifted
	return nil
}

// renderSpec picks the output format: the explicit override if set,
// otherwise the input format when the axes still agree, otherwise the fixed
// minute scale for tables that became relative (e.g. after --normalize).
func (p *pipeline) renderSpec(override string) (timefmt.Spec, error) {
	if override != "" {
		return timefmt.ParseSpec(override)
	}
	axis, ok := p.table.Axis()
	if !ok || axis == p.spec.Axis() {
		return p.spec, nil
	}
	if axis == timefmt.Relative {
		return timefmt.ParseSpec("+M")
	}
	return timefmt.Spec{}, errors.New("table is absolute but the input format is relative; pass --out-timefmt with a date pattern")
}
