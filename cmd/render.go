package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ttab/internal/config"
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Parse, transform, and print a timetable",
	Long: `Parses one or more timetable files (or stdin), combines them, applies the
requested transforms, and prints the table to stdout. Transforms run in a
fixed order: rename, fit, base, normalize, sort.`,
	RunE: runRender,
}

func init() {
	addTransformFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
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
	out, err := p.table.Render(spec)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
