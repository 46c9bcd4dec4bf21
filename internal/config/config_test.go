package config

import (
	"os"
	"path/filepath"
	"testing"

	"cppsniff/internal/smells/commented"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to be valid, got %v", err)
	}

	if cfg.Classifier.Strategy != commented.StrategyEvidenceRatio {
		t.Fatalf("Expected evidence ratio strategy, got %s", cfg.Classifier.Strategy)
	}
	if cfg.Classifier.MinRatio != 0.22 || cfg.Classifier.MaxRatio != 0.99 {
		t.Fatalf("Unexpected ratio band %.2f-%.2f", cfg.Classifier.MinRatio, cfg.Classifier.MaxRatio)
	}
	if cfg.Store.Enabled() {
		t.Fatalf("Expected store to be disabled by default")
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if cfg.App.Workers != 4 {
		t.Fatalf("Expected 4 workers, got %d", cfg.App.Workers)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	data := []byte(`
app:
  workers: 2
  format: GitHub
scan:
  extensions: [cpp, .H]
classifier:
  strategy: synthetic_parse
  min_code_depth: 5
store:
  path: ":memory:"
mcp:
  port: 9090
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.App.Workers != 2 {
		t.Fatalf("Expected 2 workers, got %d", cfg.App.Workers)
	}
	if cfg.App.Format != "github" {
		t.Fatalf("Expected format 'github', got '%s'", cfg.App.Format)
	}
	if len(cfg.Scan.Extensions) != 2 || cfg.Scan.Extensions[0] != ".cpp" || cfg.Scan.Extensions[1] != ".h" {
		t.Fatalf("Unexpected extensions %v", cfg.Scan.Extensions)
	}
	if cfg.Classifier.Strategy != commented.StrategySyntheticParse {
		t.Fatalf("Expected synthetic parse, got %s", cfg.Classifier.Strategy)
	}
	if cfg.Classifier.MinCodeDepth != 5 {
		t.Fatalf("Expected min_code_depth 5, got %d", cfg.Classifier.MinCodeDepth)
	}
	// Untouched fields keep their defaults
	if cfg.Classifier.MinCodeSize != commented.DefaultMinCodeSize {
		t.Fatalf("Expected default min_code_size, got %d", cfg.Classifier.MinCodeSize)
	}
	if cfg.Classifier.WordWeight != commented.DefaultWordWeight {
		t.Fatalf("Expected default word weight, got %.1f", cfg.Classifier.WordWeight)
	}
	if !cfg.Store.Enabled() {
		t.Fatalf("Expected store to be enabled")
	}
	if cfg.Mcp.GetAddress() != "localhost:9090" {
		t.Fatalf("Expected MCP address 'localhost:9090', got '%s'", cfg.Mcp.GetAddress())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown strategy": "classifier:\n  strategy: magic\n",
		"inverted band":    "classifier:\n  min_ratio: 0.8\n  max_ratio: 0.5\n",
		"no workers":       "app:\n  workers: 0\n",
		"bad format":       "app:\n  format: xml\n",
		"unknown field":    "app:\n  colour: red\n",
		"bad separator":    "classifier:\n  separator_ratio: 1.5\n",
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if err := Parse([]byte(data), Default()); err == nil {
				t.Fatalf("Expected error for %s", name)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Expected error for a missing file")
	}
}
