package main

import (
	"fmt"

	"github.com/hs979/mono2serverless/internal/output"
	"github.com/hs979/mono2serverless/pkg/config"
	toml "github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and validate configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration as TOML",
				Action: runConfigShowCmd,
			},
			{
				Name:      "validate",
				Usage:     "Validate a config file",
				ArgsUsage: "[path]",
				Action:    runConfigValidateCmd,
			},
		},
	}
}

func runConfigShowCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(cfg)
	}
	_, err = formatter.Writer().Write(data)
	return err
}

func runConfigValidateCmd(c *cli.Context) error {
	path := c.String("config")
	if c.Args().Len() > 0 {
		path = c.Args().First()
	}

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	} else {
		cfg = config.LoadOrDefault()
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Configuration is valid")
	return nil
}

func validateConfig(cfg *config.Config) error {
	switch cfg.Output.Format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
	if cfg.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative")
	}
	if cfg.Analysis.MaxBraceScan <= 0 {
		return fmt.Errorf("analysis.max_brace_scan must be positive")
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl_hours must be positive when caching is enabled")
	}
	if cfg.Analysis.ReportPath == "" || cfg.Analysis.ChunksPath == "" {
		return fmt.Errorf("artifact paths must not be empty")
	}
	return nil
}
