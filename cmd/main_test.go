package main

import (
	"os"
	"path/filepath"
	"testing"

	"cppsniff/internal/smells/commented"
)

func TestLoadConfig_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cppsniff.yaml")
	data := []byte("app:\n  workers: 2\n  format: json\nclassifier:\n  min_ratio: 0.3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := loadConfig(options{
		configPath: path,
		format:     "GitHub",
		strategy:   "synthetic_parse",
		workers:    8,
		storePath:  ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.App.Format != "github" {
		t.Fatalf("Expected github format, got %q", cfg.App.Format)
	}
	if cfg.App.Workers != 8 {
		t.Fatalf("Expected 8 workers, got %d", cfg.App.Workers)
	}
	if cfg.Classifier.Strategy != commented.StrategySyntheticParse {
		t.Fatalf("Expected synthetic parse, got %q", cfg.Classifier.Strategy)
	}
	if cfg.Classifier.MinRatio != 0.3 {
		t.Fatalf("Expected min_ratio from the file, got %v", cfg.Classifier.MinRatio)
	}
	if !cfg.Store.Enabled() {
		t.Fatalf("Expected the store to be enabled")
	}
}

func TestLoadConfig_InvalidOverrides(t *testing.T) {
	if _, err := loadConfig(options{format: "xml"}); err == nil {
		t.Fatalf("Expected error for an unknown format")
	}
	if _, err := loadConfig(options{strategy: "guess"}); err == nil {
		t.Fatalf("Expected error for an unknown strategy")
	}
	if _, err := loadConfig(options{workers: -1}); err == nil {
		t.Fatalf("Expected error for negative workers")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Fatalf("Expected error for an unknown log level")
	}
}
