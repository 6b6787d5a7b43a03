// Package config provides YAML-based configuration loading for the
// level generator, with environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	_ "github.com/vovakirdan/levelgen/internal/export/formats" // Register artifact formats
	"github.com/vovakirdan/levelgen/internal/registry"
)

// Config contains all configuration for a generation run.
type Config struct {
	Levels   int           `yaml:"levels"`
	Seed     uint64        `yaml:"seed"`
	Workers  int           `yaml:"workers"`
	LogLevel string        `yaml:"log_level"`
	Output   OutputConfig  `yaml:"output"`
	History  HistoryConfig `yaml:"history"`
}

// OutputConfig defines where and how artifacts are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	NamePattern string `yaml:"name_pattern"` // One %d for the level number
	Format      string `yaml:"format"`       // "json" or "yaml"
	Summary     string `yaml:"summary"`      // Summary CSV path
}

// HistoryConfig defines the optional SQLite run history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	var errs []error
	if c.Levels < 1 {
		errs = append(errs, fmt.Errorf("levels must be positive, got %d", c.Levels))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}
	if c.Output.Summary == "" {
		errs = append(errs, errors.New("output.summary is required"))
	}
	if !registry.Exists(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of %s, got %q",
			strings.Join(formatIDs(), ", "), c.Output.Format))
	}
	if c.History.Enabled && c.History.DBPath == "" {
		errs = append(errs, errors.New("history.db_path is required when history is enabled"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Normalize lowercases the case-insensitive settings. Format IDs are
// matched exactly by the registry, so call it before Validate.
func (c *Config) Normalize() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

func formatIDs() []string {
	infos := registry.List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
