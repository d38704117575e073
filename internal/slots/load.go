package slots

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"ttab/internal/timefmt"
)

// slotFile is the on-disk shape of a slot definition file:
//
//	[[slot]]
//	start = "10.01.2024 09:00"
//	end   = "10.01.2024 12:00"
//	step  = "15m"
//
// Times use the table's active format; step is a Go duration string.
type slotFile struct {
	Slots []slotDef `toml:"slot"`
}

type slotDef struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
	Step  string `toml:"step"`
}

// Load reads slot definitions from a TOML file, parsing the bounds with the
// active time format. Definition order is preserved; it decides which window
// wins for entries matching several.
func Load(path string, spec timefmt.Spec) ([]Slot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("slots: reading %s: %w", path, err)
	}

	var file slotFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("slots: parsing %s: %w", path, err)
	}

	defs := make([]Slot, 0, len(file.Slots))
	for i, d := range file.Slots {
		if d.Start == "" || d.End == "" || d.Step == "" {
			return nil, fmt.Errorf("slots: %s: slot %d needs start, end and step", path, i+1)
		}
		start, err := spec.Parse(d.Start)
		if err != nil {
			return nil, fmt.Errorf("slots: %s: slot %d start: %w", path, i+1, err)
		}
		end, err := spec.Parse(d.End)
		if err != nil {
			return nil, fmt.Errorf("slots: %s: slot %d end: %w", path, i+1, err)
		}
		step, err := time.ParseDuration(d.Step)
		if err != nil {
			return nil, fmt.Errorf("slots: %s: slot %d step: %w", path, i+1, err)
		}
		defs = append(defs, Slot{Start: start, End: end, Step: step})
	}
	return defs, nil
}
