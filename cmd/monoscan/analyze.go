package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hs979/mono2serverless/internal/analyzer"
	"github.com/hs979/mono2serverless/internal/output"
	"github.com/hs979/mono2serverless/internal/progress"
	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/urfave/cli/v2"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"scan"},
		Usage:     "Analyze a source tree and write the analysis report",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "app-prefix",
				Usage: "Namespace prefix prepended to every symbol id",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Report output path (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Validate the report against the embedded schema before writing",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	root := getRoot(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if prefix := c.String("app-prefix"); prefix != "" {
		cfg.Analysis.AppPrefix = prefix
	}
	reportPath := cfg.Analysis.ReportPath
	if path := c.String("report"); path != "" {
		reportPath = path
	}

	fileCache, err := openCache(cfg)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	proj := analyzer.New(cfg, fileCache)
	proj.Warn = func(format string, args ...any) {
		color.Yellow(format, args...)
	}

	files, err := proj.ScanFiles(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Analyzing files...", len(files))
	report, err := proj.AnalyzeFiles(root, files, tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	if c.Bool("validate") {
		if err := models.ValidateReport(report); err != nil {
			return fmt.Errorf("report failed schema validation: %w", err)
		}
	}

	data, err := models.MarshalReport(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if err := writeArtifact(reportPath, data); err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	storeUsed := "no"
	if report.StoreInfo != nil && report.StoreInfo.Used {
		storeUsed = fmt.Sprintf("yes (%d probable tables)", len(report.StoreInfo.ProbableTables))
	}

	table := output.NewTable(
		"Analysis Summary",
		[]string{"Metric", "Value"},
		[][]string{
			{"Files analyzed", fmt.Sprintf("%d", len(files))},
			{"Entry points", fmt.Sprintf("%d", len(report.EntryPoints))},
			{"Symbols", fmt.Sprintf("%d", len(report.SymbolTable))},
			{"Tagged files", fmt.Sprintf("%d", len(report.FileTags))},
			{"Key-value store", storeUsed},
		},
		nil,
		report,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	formatter.Success("Report written to %s", reportPath)
	return nil
}
