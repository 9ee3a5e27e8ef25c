// Package config loads monoscan configuration from TOML, YAML, or JSON
// files, falling back to built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for monoscan.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Directory exclusion
	Exclude ExcludeConfig `koanf:"exclude"`

	// Frontend role detection overrides
	Frontend FrontendConfig `koanf:"frontend"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls the analysis and chunking passes.
type AnalysisConfig struct {
	// AppPrefix namespaces symbol ids when several independently scanned
	// applications share relative paths.
	AppPrefix string `koanf:"app_prefix"`

	ReportPath string `koanf:"report_path"`
	ChunksPath string `koanf:"chunks_path"`

	// MaxBraceScan bounds the end-line heuristic for JS symbols.
	MaxBraceScan int `koanf:"max_brace_scan"`

	// Workers caps the parallel file-analysis pool. 0 means 2x NumCPU.
	Workers int `koanf:"workers"`
}

// ExcludeConfig defines directory exclusions applied while walking.
type ExcludeConfig struct {
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// FrontendConfig adds to the built-in frontend directory set.
type FrontendConfig struct {
	Dirs []string `koanf:"dirs"`
}

// CacheConfig controls the per-file analysis cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ReportPath:   filepath.Join("storage", "analysis_report.json"),
			ChunksPath:   filepath.Join("storage", "chunks.json"),
			MaxBraceScan: 1000,
		},
		Exclude: ExcludeConfig{
			Dirs: []string{
				"venv",
				"env",
				".venv",
				"__pycache__",
				"node_modules",
				".git",
				".idea",
				".vscode",
				"dist",
				"build",
				".pytest_cache",
				".mypy_cache",
				"htmlcov",
				".tox",
				"eggs",
				".eggs",
			},
			Gitignore: false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(".monoscan", "cache"),
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"monoscan.toml",
		"monoscan.yaml",
		"monoscan.yml",
		"monoscan.json",
		".monoscan.toml",
		".monoscan.yaml",
		".monoscan.yml",
		".monoscan.json",
	}

	searchDirs := []string{".", ".monoscan"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// IsIgnoredDir reports whether a directory entry name is excluded from
// walking. Dot-prefixed entries are always ignored.
func (c *Config) IsIgnoredDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, dir := range c.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}
