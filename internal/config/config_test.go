package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != DefaultConfig() {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", fromYAML, DefaultConfig())
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "levels: 20\noutput:\n  format: yaml\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile() failed: %v", err)
	}
	if cfg.Levels != 20 {
		t.Errorf("expected 20 levels, got %d", cfg.Levels)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("expected yaml format, got %q", cfg.Output.Format)
	}
	// Untouched keys keep their defaults
	if cfg.Output.Dir != "map" || cfg.Workers != 4 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := loadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("levels: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFile(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LEVELGEN_LEVELS":     "30",
		"LEVELGEN_SEED":       "1234",
		"LEVELGEN_WORKERS":    "8",
		"LEVELGEN_LOG_LEVEL":  "DEBUG",
		"LEVELGEN_OUTPUT_DIR": "out/levels",
		"LEVELGEN_FORMAT":     "YAML",
		"LEVELGEN_HISTORY":    "true",
		"LEVELGEN_DB":         "/tmp/h.db",
		"LEVELGEN_SUMMARY":    "  ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Levels != 30 || cfg.Seed != 1234 || cfg.Workers != 8 {
		t.Errorf("numeric overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.Output.Format != "yaml" {
		t.Errorf("case not normalized: %q %q", cfg.LogLevel, cfg.Output.Format)
	}
	if cfg.Output.Dir != "out/levels" {
		t.Errorf("expected output dir override, got %q", cfg.Output.Dir)
	}
	if !cfg.History.Enabled || cfg.History.DBPath != "/tmp/h.db" {
		t.Errorf("history overrides not applied: %+v", cfg.History)
	}
	if cfg.Output.Summary != "levels_summary.csv" {
		t.Errorf("blank override should be ignored, got %q", cfg.Output.Summary)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	cfg := DefaultConfig()
	lookup := func(k string) (string, bool) {
		if k == "LEVELGEN_LEVELS" {
			return "many", true
		}
		return "", false
	}
	if err := ApplyEnv(&cfg, lookup); err == nil {
		t.Error("expected error for non-numeric LEVELGEN_LEVELS")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = 0
	cfg.Workers = 0
	cfg.Output.Format = "xml"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"levels", "workers", "output.format", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q: %v", want, err)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.levelgen/history.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".levelgen", "history.db") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got, _ := ExpandHome("rel/path"); got != "rel/path" {
		t.Errorf("relative path should be unchanged, got %q", got)
	}
}

func TestFormatNormalizedBeforeValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = " JSON "
	if err := cfg.Validate(); err == nil {
		t.Error("registry IDs are exact, un-normalized format should not validate")
	}

	cfg.Normalize()
	if cfg.Output.Format != "json" {
		t.Errorf("expected json, got %q", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("normalized config should be valid: %v", err)
	}
}

func TestLoadNormalizesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("log_level: WARN\noutput:\n  format: YAML\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Output.Format != "yaml" || cfg.LogLevel != "warn" {
		t.Errorf("file values not normalized: %q %q", cfg.Output.Format, cfg.LogLevel)
	}
}

func TestValidateListsRegisteredFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "toml"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "json, yaml") {
		t.Errorf("expected registered formats in error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}

	broken := filepath.Join(dir, "broken.env")
	if err := os.WriteFile(broken, []byte("LEVELGEN_SEED=\"unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := loadDotEnv(broken); err == nil {
		t.Error("expected error for malformed .env")
	}
}
