package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ttab",
	Short: "Tab-delimited timetable toolkit",
	Long: `ttab parses tab-delimited timetables, transforms them (rename, base-shift,
normalize, sort, slot-fitting), verifies their structure, and renders them
back as text. Times are absolute (strftime patterns) or relative (+S/+M/+H/+D
offsets); the format can be inferred from the input.`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .ttab.yaml)")
	rootCmd.PersistentFlags().StringP("timefmt", "t", "", `time format: strftime pattern, +S/+M/+H/+D, or "infer"`)
	rootCmd.PersistentFlags().String("out-timefmt", "", "output time format (default: same as input)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress info and warning diagnostics")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostics")

	_ = viper.BindPFlag("time_format", rootCmd.PersistentFlags().Lookup("timefmt"))
	_ = viper.BindPFlag("out_format", rootCmd.PersistentFlags().Lookup("out-timefmt"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ttab")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("TTAB")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
