package config

import (
	_ "embed"
)

//go:embed defaults/levelgen.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Levels:   100,
		Seed:     0,
		Workers:  4,
		LogLevel: "info",
		Output: OutputConfig{
			Dir:         "map",
			NamePattern: "level%d",
			Format:      "json",
			Summary:     "levels_summary.csv",
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "~/.levelgen/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
