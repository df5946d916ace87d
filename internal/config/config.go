package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a rota invocation.
// Values are populated from .rota.yaml, ROTA_* env vars, and CLI flags.
type Config struct {
	Format      string   `mapstructure:"format"`       // input time format selector; "" means infer
	OutFormat   string   `mapstructure:"out_format"`   // output selector; "" follows the input format
	Color       bool     `mapstructure:"color"`        // colored stderr feedback
	TracePath   string   `mapstructure:"trace_path"`   // JSONL trace file; "" disables tracing
	CountLabels []string `mapstructure:"count_labels"` // default label set for the counts check
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("format", "")
	viper.SetDefault("out_format", "")
	viper.SetDefault("color", true)
	viper.SetDefault("trace_path", "")
	viper.SetDefault("count_labels", []string{})

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}
