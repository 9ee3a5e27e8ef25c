package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/hs979/mono2serverless/internal/locator"
	"github.com/hs979/mono2serverless/internal/output"
	"github.com/urfave/cli/v2"
)

func locateCmd() *cli.Command {
	return &cli.Command{
		Name:      "locate",
		Usage:     "Resolve a path, glob, filename, or symbol against the analyzed tree",
		ArgsUsage: "<focus> [path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "report",
				Usage: "Analysis report used for symbol resolution (overrides config)",
			},
		},
		Action: runLocateCmd,
	}
}

func runLocateCmd(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("locate requires a focus argument")
	}
	focus := c.Args().First()
	root := "."
	if c.Args().Len() > 1 {
		root = c.Args().Get(1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	reportPath := cfg.Analysis.ReportPath
	if path := c.String("report"); path != "" {
		reportPath = path
	}

	report := loadReport(reportPath)
	if report == nil && cfg.Output.Verbose {
		color.Yellow("No analysis report at %s; symbol resolution disabled", reportPath)
	}

	result, err := locator.Locate(focus, report, locator.WithBaseDir(root))
	if errors.Is(err, locator.ErrAmbiguousMatch) {
		color.Yellow("Ambiguous match for %q:", focus)
		for _, cand := range result.Candidates {
			if cand.Path != "" {
				fmt.Printf("  - %s\n", cand.Path)
			} else {
				fmt.Printf("  - %s (%s:%d, %s)\n", cand.ID, cand.File, cand.Line, cand.Kind)
			}
		}
		return err
	}
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	switch result.Type {
	case locator.TargetSymbol:
		sym := result.Symbol
		table := output.NewTable(
			"",
			[]string{"Id", "File", "Lines", "Kind"},
			[][]string{{
				sym.ID,
				sym.FilePath,
				fmt.Sprintf("%d-%d", sym.StartLine, sym.EndLine),
				string(sym.Kind),
			}},
			nil,
			sym,
		)
		return formatter.Output(table)
	default:
		section := &output.Section{
			Content: result.Path,
			Data:    map[string]string{"path": result.Path, "type": string(result.Type)},
		}
		return formatter.Output(section)
	}
}
