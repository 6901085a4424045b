// Package config loads the settings shared by the command line tools.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/assembly-kg/pkg/graphfile"
	"github.com/dd0wney/assembly-kg/pkg/validation"
)

// Environment variables read by ApplyEnv
const (
	EnvAssembly = "KG_ASSEMBLY"
	EnvGraph    = "KG_GRAPH"
	EnvOut      = "KG_OUT"
	EnvLogLevel = "LOG_LEVEL"
)

// Config holds the settings of one command invocation
type Config struct {
	// Assembly is the id the parameterized queries run against
	Assembly string `yaml:"assembly"`
	// GraphPath is the graph file; its extension selects the syntax
	GraphPath string `yaml:"graph" validate:"required"`
	// OutDir receives the CSV files
	OutDir string `yaml:"out" validate:"required"`
	// Fixture is an optional YAML dataset replacing the built-in sample
	Fixture string `yaml:"fixture,omitempty"`
	// MetricsFile, when set, receives the metrics in Prometheus text format on exit
	MetricsFile string `yaml:"metricsFile,omitempty"`

	LogLevel     string        `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat    string        `yaml:"logFormat" validate:"oneof=json text"`
	QueryTimeout time.Duration `yaml:"queryTimeout" validate:"gte=0"`
}

// DefaultConfig returns a Config with the defaults of the command line tools
func DefaultConfig() *Config {
	return &Config{
		Assembly:  "A100",
		GraphPath: "kg.ttl",
		OutDir:    "out",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadFromFile reads a YAML config file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &c, nil
}

// Merge overlays the non-zero fields of other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	c.Assembly = validation.DefaultOr(other.Assembly, c.Assembly)
	c.GraphPath = validation.DefaultOr(other.GraphPath, c.GraphPath)
	c.OutDir = validation.DefaultOr(other.OutDir, c.OutDir)
	c.Fixture = validation.DefaultOr(other.Fixture, c.Fixture)
	c.MetricsFile = validation.DefaultOr(other.MetricsFile, c.MetricsFile)
	c.LogLevel = validation.DefaultOr(other.LogLevel, c.LogLevel)
	c.LogFormat = validation.DefaultOr(other.LogFormat, c.LogFormat)
	c.QueryTimeout = validation.DefaultOr(other.QueryTimeout, c.QueryTimeout)
}

// ApplyEnv overlays the environment variables that are set and non-empty
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	c.Merge(&Config{
		Assembly:  get(EnvAssembly),
		GraphPath: get(EnvGraph),
		OutDir:    get(EnvOut),
		LogLevel:  strings.ToLower(get(EnvLogLevel)),
	})
}

// Validate checks field rules, then that the graph path has a supported extension
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return validation.NewConfigValidator("config").
		Custom("graph", func() error {
			if _, err := graphfile.DetectFormat(c.GraphPath); err != nil {
				return &graphfile.Error{Op: "check", Path: c.GraphPath, Kind: err}
			}
			return nil
		}).
		When(c.Fixture != "", func(cv *validation.ConfigValidator) {
			cv.Extension("fixture", c.Fixture, ".yaml", ".yml")
		}).
		Validate()
}

// Load builds the effective config: defaults, then the file at path when path is
// non-empty, then the environment. Command line flags are applied by the caller.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	c := DefaultConfig()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		c.Merge(fileConfig)
	}
	if lookup != nil {
		c.ApplyEnv(lookup)
	}
	return c, nil
}
