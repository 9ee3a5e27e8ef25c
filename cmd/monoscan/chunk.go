package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hs979/mono2serverless/internal/chunker"
	"github.com/hs979/mono2serverless/internal/output"
	"github.com/hs979/mono2serverless/internal/progress"
	"github.com/hs979/mono2serverless/internal/scanner"
	"github.com/hs979/mono2serverless/pkg/models"
	"github.com/urfave/cli/v2"
)

func chunkCmd() *cli.Command {
	return &cli.Command{
		Name:      "chunk",
		Usage:     "Cut analyzed sources into retrieval chunks",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "report",
				Usage: "Analysis report to read symbols and tags from (overrides config)",
			},
			&cli.StringFlag{
				Name:  "chunks",
				Usage: "Chunk list output path (overrides config)",
			},
		},
		Action: runChunkCmd,
	}
}

func runChunkCmd(c *cli.Context) error {
	root := getRoot(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	reportPath := cfg.Analysis.ReportPath
	if path := c.String("report"); path != "" {
		reportPath = path
	}
	chunksPath := cfg.Analysis.ChunksPath
	if path := c.String("chunks"); path != "" {
		chunksPath = path
	}

	report := loadReport(reportPath)
	if report == nil {
		color.Yellow("No analysis report at %s; chunking without symbol data (run analyze first for function-level chunks)", reportPath)
	}

	files, err := scanner.NewScanner(cfg).ScanDir(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	spinner := progress.NewSpinner("Building chunks...")
	builder := chunker.NewBuilder(report)
	chunks, stats := builder.Build(root, files, func(path string, err error) {
		color.Yellow("skipping %s: %v", path, err)
	})
	spinner.FinishSuccess()

	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize chunks: %w", err)
	}
	if err := writeArtifact(chunksPath, data); err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		"Chunking Summary",
		[]string{"Metric", "Value"},
		[][]string{
			{"Files seen", fmt.Sprintf("%d", stats.Total)},
			{"Function-chunked", fmt.Sprintf("%d", stats.Chunked)},
			{"Whole-file", fmt.Sprintf("%d", stats.WholeFile)},
			{"Skipped", fmt.Sprintf("%d", stats.Skipped)},
			{"Chunks", fmt.Sprintf("%d", len(chunks))},
		},
		nil,
		stats,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	formatter.Success("Chunks written to %s", chunksPath)
	return nil
}

// loadReport reads a prior analysis report. Any failure degrades to nil;
// chunking still works without symbol data.
func loadReport(path string) *models.AnalysisReport {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var report models.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil
	}
	return &report
}
