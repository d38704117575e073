package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ttab/internal/timefmt"
)

var inferCmd = &cobra.Command{
	Use:   "infer SAMPLE",
	Short: "Deduce the time format of a sample string",
	Long: `Tries the known absolute date patterns against the sample and prints the
first one that fully matches, e.g.

  ttab infer "10.01.2024 09:00"   ->   %d.%m.%Y %H:%M`,
	Args: cobra.ExactArgs(1),
	RunE: runInfer,
}

func init() {
	rootCmd.AddCommand(inferCmd)
}

func runInfer(cmd *cobra.Command, args []string) error {
	spec, err := timefmt.Infer(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), spec.String())
	return nil
}
