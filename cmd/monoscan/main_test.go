package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hs979/mono2serverless/pkg/config"
	"github.com/hs979/mono2serverless/pkg/models"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *config.Config) {}, false},
		{"unknown format", func(c *config.Config) { c.Output.Format = "xml" }, true},
		{"negative workers", func(c *config.Config) { c.Analysis.Workers = -1 }, true},
		{"zero brace scan", func(c *config.Config) { c.Analysis.MaxBraceScan = 0 }, true},
		{"zero ttl with cache on", func(c *config.Config) { c.Cache.TTL = 0 }, true},
		{"zero ttl with cache off", func(c *config.Config) { c.Cache.TTL = 0; c.Cache.Enabled = false }, false},
		{"empty report path", func(c *config.Config) { c.Analysis.ReportPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReport(t *testing.T) {
	dir := t.TempDir()

	if loadReport(filepath.Join(dir, "missing.json")) != nil {
		t.Error("missing report should load as nil")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if loadReport(bad) != nil {
		t.Error("malformed report should load as nil")
	}

	report := models.NewAnalysisReport()
	report.SymbolTable = []models.Symbol{{ID: "m.f", FilePath: "m.py", StartLine: 1, EndLine: 2}}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded := loadReport(good)
	if loaded == nil || len(loaded.SymbolTable) != 1 || loaded.SymbolTable[0].ID != "m.f" {
		t.Errorf("loadReport() = %+v", loaded)
	}
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storage", "report.json")

	if err := writeArtifact(path, []byte("{}")); err != nil {
		t.Fatalf("writeArtifact() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("artifact = %q", data)
	}
}
