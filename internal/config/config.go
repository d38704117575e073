package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for one ttab invocation.
// Values are populated from .ttab.yaml, TTAB_* env vars, and CLI flags.
type Config struct {
	TimeFormat  string `mapstructure:"time_format"`
	OutFormat   string `mapstructure:"out_format"`
	Quiet       bool   `mapstructure:"quiet"`
	NoColor     bool   `mapstructure:"no_color"`
	ExpectCount int    `mapstructure:"expect_count"`
	SlotsFile   string `mapstructure:"slots_file"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("time_format", "infer")
	viper.SetDefault("out_format", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("expect_count", 1)
	viper.SetDefault("slots_file", "")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
