package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"TimeFormat", cfg.TimeFormat, "infer"},
		{"OutFormat", cfg.OutFormat, ""},
		{"Quiet", cfg.Quiet, false},
		{"NoColor", cfg.NoColor, false},
		{"ExpectCount", cfg.ExpectCount, 1},
		{"SlotsFile", cfg.SlotsFile, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper()

	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "time_format",
			envKey: "TTAB_TIME_FORMAT",
			envVal: "%d.%m.%Y %H:%M",
			field:  func(c Config) any { return c.TimeFormat },
			want:   "%d.%m.%Y %H:%M",
		},
		{
			name:   "out_format",
			envKey: "TTAB_OUT_FORMAT",
			envVal: "+M",
			field:  func(c Config) any { return c.OutFormat },
			want:   "+M",
		},
		{
			name:   "quiet",
			envKey: "TTAB_QUIET",
			envVal: "true",
			field:  func(c Config) any { return c.Quiet },
			want:   true,
		},
		{
			name:   "expect_count",
			envKey: "TTAB_EXPECT_COUNT",
			envVal: "2",
			field:  func(c Config) any { return c.ExpectCount },
			want:   2,
		},
		{
			name:   "slots_file",
			envKey: "TTAB_SLOTS_FILE",
			envVal: "/tmp/slots.toml",
			field:  func(c Config) any { return c.SlotsFile },
			want:   "/tmp/slots.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so TTAB_* env vars map to config keys.
			viper.SetEnvPrefix("TTAB")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg := Load()
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}
