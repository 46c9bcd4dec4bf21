package config

import (
	"fmt"
	"os"
	"strings"

	"cppsniff/internal/smells/commented"

	"gopkg.in/yaml.v2"
)

// Config is the full application configuration
type Config struct {
	App        AppConfig         `yaml:"app"`
	Scan       ScanConfig        `yaml:"scan"`
	Classifier commented.Options `yaml:"classifier"`
	Server     ServerConfig      `yaml:"server"`
	Mcp        McpConfig         `yaml:"mcp"`
	Store      StoreConfig       `yaml:"store"`
}

type AppConfig struct {
	LogLevel string `yaml:"log_level"`
	Workers  int    `yaml:"workers"`
	Format   string `yaml:"format"` // text, json or github
}

type ScanConfig struct {
	Extensions   []string `yaml:"extensions"`
	ExcludeDirs  []string `yaml:"exclude_dirs"`
	OnlyModified bool     `yaml:"only_modified"` // only scan files changed against git HEAD
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type McpConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GetAddress returns the listen address of the MCP server
func (m McpConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

type StoreConfig struct {
	Path string `yaml:"path"` // empty disables the finding store
}

// Enabled reports whether findings should be persisted
func (s StoreConfig) Enabled() bool {
	return s.Path != ""
}

var validFormats = map[string]bool{"text": true, "json": true, "github": true}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		App: AppConfig{
			LogLevel: "info",
			Workers:  4,
			Format:   "text",
		},
		Scan: ScanConfig{
			Extensions:  []string{".c", ".cpp", ".cxx", ".cc", ".c++"},
			ExcludeDirs: []string{".git"},
		},
		Classifier: commented.DefaultOptions(),
		Server:     ServerConfig{Port: 8080},
		Mcp:        McpConfig{Host: "localhost", Port: 8081},
	}
}

// LoadConfig reads a YAML configuration file over the defaults. An empty
// path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping existing values for absent fields,
// and validates the result
func Parse(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg.Validate()
}

func (c *Config) normalize() {
	for i, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scan.Extensions[i] = ext
	}
	c.App.Format = strings.ToLower(c.App.Format)
	c.App.LogLevel = strings.ToLower(c.App.LogLevel)
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.App.Workers < 1 {
		return fmt.Errorf("app.workers must be positive, got %d", c.App.Workers)
	}
	if !validFormats[c.App.Format] {
		return fmt.Errorf("unknown output format: %q", c.App.Format)
	}
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions must not be empty")
	}
	if err := c.Classifier.Validate(); err != nil {
		return fmt.Errorf("invalid classifier config: %w", err)
	}
	return nil
}
