package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.MaxBraceScan != 1000 {
		t.Errorf("MaxBraceScan = %d, want 1000", cfg.Analysis.MaxBraceScan)
	}
	if cfg.Analysis.ReportPath != filepath.Join("storage", "analysis_report.json") {
		t.Errorf("ReportPath = %q", cfg.Analysis.ReportPath)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 24 {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Output.Format != "text" || !cfg.Output.Color {
		t.Errorf("output defaults = %+v", cfg.Output)
	}
	if cfg.Exclude.Gitignore {
		t.Error("gitignore layering should be off by default")
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monoscan.toml")
	content := `
[analysis]
app_prefix = "shop"
workers = 4

[cache]
enabled = false

[frontend]
dirs = ["spa"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.AppPrefix != "shop" {
		t.Errorf("AppPrefix = %q, want shop", cfg.Analysis.AppPrefix)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by file")
	}
	if len(cfg.Frontend.Dirs) != 1 || cfg.Frontend.Dirs[0] != "spa" {
		t.Errorf("Frontend.Dirs = %v", cfg.Frontend.Dirs)
	}

	// Values not present in the file keep their defaults.
	if cfg.Analysis.MaxBraceScan != 1000 {
		t.Errorf("MaxBraceScan = %d, want default 1000", cfg.Analysis.MaxBraceScan)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monoscan.yaml")
	content := "analysis:\n  app_prefix: web\noutput:\n  verbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Analysis.AppPrefix != "web" {
		t.Errorf("AppPrefix = %q, want web", cfg.Analysis.AppPrefix)
	}
	if !cfg.Output.Verbose {
		t.Error("verbose should be set")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestIsIgnoredDir(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		want bool
	}{
		{"node_modules", true},
		{"__pycache__", true},
		{"venv", true},
		{".git", true},
		{".anything", true},
		{"src", false},
		{"frontend", false},
	}

	for _, tt := range tests {
		if got := cfg.IsIgnoredDir(tt.name); got != tt.want {
			t.Errorf("IsIgnoredDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
