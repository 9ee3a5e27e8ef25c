package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hs979/mono2serverless/internal/cache"
	"github.com/hs979/mono2serverless/pkg/config"
	"github.com/hs979/mono2serverless/pkg/parser"
	"github.com/urfave/cli/v2"
)

// getRoot returns the scan root from the first positional arg, defaulting
// to the current directory.
func getRoot(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

// loadConfig resolves the effective config: an explicit --config path, a
// discovered config file, or defaults. Global flags override file values.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	} else {
		cfg = config.LoadOrDefault()
	}

	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	parser.RegisterFrontendDirs(cfg.Frontend.Dirs...)
	return cfg, nil
}

// openCache builds the analysis cache from config.
func openCache(cfg *config.Config) (*cache.Cache, error) {
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
}

// writeArtifact writes a fully assembled artifact, creating parent
// directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
