package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"ttab/internal/config"
	"ttab/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [files...]",
	Short: "Browse a timetable interactively",
	Long: `Opens the parsed (and optionally transformed) table in a scrollable
terminal viewer. Takes the same transform flags as render.`,
	RunE: runView,
}

func init() {
	addTransformFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := newPipeline(cfg, args)
	if err != nil {
		return err
	}
	if err := p.apply(transformsFromFlags(cmd)); err != nil {
		return err
	}

	spec, err := p.renderSpec(cfg.OutFormat)
	if err != nil {
		return err
	}
	rendered, err := p.table.Render(spec)
	if err != nil {
		return err
	}

	title := "stdin"
	if len(args) > 0 {
		title = strings.Join(args, ", ")
	}
	return tui.Run(title, rendered)
}
