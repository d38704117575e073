package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ttab/internal/config"
	"ttab/internal/diag"
	"ttab/internal/timefmt"
	"ttab/internal/timetable"
	"ttab/internal/verify"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.ttab")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func quietCfg(format string) config.Config {
	return config.Config{TimeFormat: format, Quiet: true, NoColor: true, ExpectCount: 1}
}

func TestResolveSpec(t *testing.T) {
	d := diag.NewWriter(&bytes.Buffer{}, true, false)

	t.Run("ExplicitFormat", func(t *testing.T) {
		spec, err := resolveSpec("+M", nil, d)
		if err != nil {
			t.Fatalf("resolveSpec: %v", err)
		}
		if spec.Axis() != timefmt.Relative {
			t.Error("expected relative spec")
		}
	})

	t.Run("InferFromFirstField", func(t *testing.T) {
		inputs := []input{{name: "a", text: "10.01.2024 09:00\tRoom1=Math\n"}}
		spec, err := resolveSpec("infer", inputs, d)
		if err != nil {
			t.Fatalf("resolveSpec: %v", err)
		}
		if spec.String() != "%d.%m.%Y %H:%M" {
			t.Errorf("spec = %q", spec.String())
		}
	})

	t.Run("EmptyDefaultsToInfer", func(t *testing.T) {
		inputs := []input{{name: "a", text: "09:00\tA=1\n"}}
		spec, err := resolveSpec("", inputs, d)
		if err != nil {
			t.Fatalf("resolveSpec: %v", err)
		}
		if spec.String() != "%H:%M" {
			t.Errorf("spec = %q", spec.String())
		}
	})

	t.Run("InferEmptyInput", func(t *testing.T) {
		if _, err := resolveSpec("infer", nil, d); err == nil {
			t.Fatal("expected error for empty input")
		}
	})
}

func TestNewPipelineCombinesFiles(t *testing.T) {
	a := writeInput(t, "0\tA=1\n")
	b := writeInput(t, "30\tB=2\n")

	p, err := newPipeline(quietCfg("+M"), []string{a, b})
	if err != nil {
		t.Fatalf("newPipeline: %v", err)
	}
	if len(p.table.Entries) != 2 {
		t.Errorf("entry count = %d, want 2", len(p.table.Entries))
	}
}

func TestNewPipelineParseErrorNamesFile(t *testing.T) {
	path := writeInput(t, "0\tA=1\nbogus\tB=2\n")

	_, err := newPipeline(quietCfg("+M"), []string{path})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), filepath.Base(path)) {
		t.Errorf("error %q does not name the input file", err.Error())
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not carry the line number", err.Error())
	}
}

func TestApplyRenamesWarnsOnDuplicateTarget(t *testing.T) {
	spec, _ := timefmt.ParseSpec("+M")
	table, err := timetable.Parse("0\tRoom1=Math\n", spec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var stderr bytes.Buffer
	p := &pipeline{spec: spec, table: table, diag: diag.NewWriter(&stderr, false, false)}

	if err := p.applyRenames([]string{"Room1=X", "Room1=Y"}); err != nil {
		t.Fatalf("applyRenames: %v", err)
	}

	l, ok := table.Label("Room1")
	if !ok {
		t.Fatal("label Room1 missing")
	}
	if l.Name != "Y" {
		t.Errorf("name = %q, want Y (last write wins)", l.Name)
	}
	if !strings.Contains(stderr.String(), "renamed more than once") {
		t.Errorf("expected duplicate-rename warning, got %q", stderr.String())
	}
}

func TestApplyBaseOnAbsoluteWarnsAndKeepsTable(t *testing.T) {
	spec, _ := timefmt.ParseSpec("%d.%m.%Y %H:%M")
	table, err := timetable.Parse("10.01.2024 09:00\tRoom1=Math\n", spec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var stderr bytes.Buffer
	p := &pipeline{spec: spec, table: table, diag: diag.NewWriter(&stderr, false, false)}

	if err := p.applyBase("10.01.2024 00:00"); err != nil {
		t.Fatalf("applyBase: %v", err)
	}
	if !strings.Contains(stderr.String(), "already absolute") {
		t.Errorf("expected already-absolute warning, got %q", stderr.String())
	}
	out, err := p.table.Render(spec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "10.01.2024 09:00\tRoom1=Math\n"; out != want {
		t.Errorf("table changed under no-op base: %q", out)
	}
}

func TestApplyBaseShiftsRelativeTable(t *testing.T) {
	spec, _ := timefmt.ParseSpec("+M")
	table, err := timetable.Parse("0\tRoom1=Math\n60\tRoom1=English\n", spec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p := &pipeline{spec: spec, table: table, diag: diag.NewWriter(&bytes.Buffer{}, true, false)}
	if err := p.applyBase("10.01.2024 09:00"); err != nil {
		t.Fatalf("applyBase: %v", err)
	}

	outSpec, err := p.renderSpec("%d.%m.%Y %H:%M")
	if err != nil {
		t.Fatalf("renderSpec: %v", err)
	}
	out, err := p.table.Render(outSpec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "10.01.2024 09:00\tRoom1=Math\n10.01.2024 10:00\tRoom1=English\n"
	if out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestRenderSpecFallsBackToMinutes(t *testing.T) {
	spec, _ := timefmt.ParseSpec("%d.%m.%Y %H:%M")
	table, err := timetable.Parse("10.01.2024 09:00\tA=1\n10.01.2024 09:30\tB=2\n", spec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p := &pipeline{spec: spec, table: table, diag: diag.NewWriter(&bytes.Buffer{}, true, false)}
	if err := p.apply(transformFlags{normalize: true}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	outSpec, err := p.renderSpec("")
	if err != nil {
		t.Fatalf("renderSpec: %v", err)
	}
	out, err := p.table.Render(outSpec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "0\tA=1\n30\tB=2\n"; out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

// End-to-end: absolute input, a base to the same date (no-op with warning),
// label verification passing, then a rename showing up in the output.
func TestEndToEndRenameAndVerify(t *testing.T) {
	spec, _ := timefmt.ParseSpec("%d.%m.%Y %H:%M")
	table, err := timetable.Parse("10.01.2024 09:00\tRoom1=Math\n", spec)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var stderr bytes.Buffer
	p := &pipeline{spec: spec, table: table, diag: diag.NewWriter(&stderr, false, false)}

	if err := p.applyBase("10.01.2024 09:00"); err != nil {
		t.Fatalf("applyBase: %v", err)
	}

	suite := &verify.Suite{Checks: []verify.Check{verify.Labels()}}
	if result := suite.Run(p.table); !result.Passed {
		t.Fatalf("labels check failed: %v", result.Failures())
	}

	if err := p.applyRenames([]string{"Room1=Hall A"}); err != nil {
		t.Fatalf("applyRenames: %v", err)
	}
	out, err := p.table.Render(spec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "10.01.2024 09:00\tHall A=Math\n"; out != want {
		t.Errorf("rendered %q, want %q", out, want)
	}
}

func TestBuildSuite(t *testing.T) {
	t.Run("KnownChecks", func(t *testing.T) {
		suite, err := buildSuite([]string{"dimensions", "unique"}, nil, 1)
		if err != nil {
			t.Fatalf("buildSuite: %v", err)
		}
		if len(suite.Checks) != 2 {
			t.Errorf("check count = %d, want 2", len(suite.Checks))
		}
	})

	t.Run("CountNeedsLabels", func(t *testing.T) {
		suite, err := buildSuite([]string{"unique"}, []string{"A", "B"}, 2)
		if err != nil {
			t.Fatalf("buildSuite: %v", err)
		}
		if len(suite.Checks) != 2 {
			t.Errorf("check count = %d, want 2 (unique + count)", len(suite.Checks))
		}
	})

	t.Run("UnknownCheck", func(t *testing.T) {
		if _, err := buildSuite([]string{"gravity"}, nil, 1); err == nil {
			t.Fatal("expected error for unknown check")
		}
	})
}
