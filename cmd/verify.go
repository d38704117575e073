package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ttab/internal/config"
	"ttab/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [files...]",
	Short: "Run structural checks over a timetable",
	Long: `Runs the structural check suite against the parsed table. Every check runs
even when an earlier one fails, and every failure is reported; any failure
makes the process exit nonzero.

Available checks: dimensions, labels, conflicts, unique. The count check is
added by selecting labels with --count-labels; --expect sets how many entries
each selected label must have.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringSlice("checks", []string{"dimensions", "labels", "conflicts", "unique"},
		"checks to run")
	verifyCmd.Flags().StringSlice("count-labels", nil, "label keys for the count check")
	verifyCmd.Flags().Int("expect", 0, "expected entry count per selected label (default from config)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := newPipeline(cfg, args)
	if err != nil {
		return err
	}

	names, _ := cmd.Flags().GetStringSlice("checks")
	countLabels, _ := cmd.Flags().GetStringSlice("count-labels")
	expect, _ := cmd.Flags().GetInt("expect")
	if expect == 0 {
		expect = cfg.ExpectCount
	}

	suite, err := buildSuite(names, countLabels, expect)
	if err != nil {
		return err
	}

	result := suite.Run(p.table)
	for _, cr := range result.Checks {
		if cr.Passed {
			p.diag.Infof("✓ %s", cr.Name)
		} else {
			p.diag.Errorf("✗ %s: %s", cr.Name, cr.Message)
		}
	}

	if !result.Passed {
		os.Exit(1)
	}
	p.diag.Infof("all checks passed")
	return nil
}

func buildSuite(names, countLabels []string, expect int) (*verify.Suite, error) {
	suite := &verify.Suite{}
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "dimensions":
			suite.Checks = append(suite.Checks, verify.Dimensions())
		case "labels":
			suite.Checks = append(suite.Checks, verify.Labels())
		case "conflicts":
			suite.Checks = append(suite.Checks, verify.Conflicts())
		case "unique":
			suite.Checks = append(suite.Checks, verify.Unique())
		case "count":
			// Added below when labels are selected.
		default:
			return nil, fmt.Errorf("unknown check %q", name)
		}
	}
	if len(countLabels) > 0 {
		suite.Checks = append(suite.Checks, verify.Count(countLabels, expect))
	}
	return suite, nil
}
