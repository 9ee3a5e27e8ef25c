package main

import (
	"github.com/fatih/color"
	"github.com/hs979/mono2serverless/internal/output"
	"github.com/hs979/mono2serverless/internal/scanner"
	"github.com/urfave/cli/v2"
)

func structureCmd() *cli.Command {
	return &cli.Command{
		Name:      "structure",
		Aliases:   []string{"tree"},
		Usage:     "Render the project directory tree",
		ArgsUsage: "[path]",
		Action:    runStructureCmd,
	}
}

func runStructureCmd(c *cli.Context) error {
	root := getRoot(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tree, err := scanner.NewScanner(cfg).RenderTree(root)
	if err != nil {
		return err
	}

	files, err := scanner.NewScanner(cfg).ScanDir(root)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	section := &output.Section{
		Content: tree,
		Data: map[string]any{
			"project_structure": tree,
			"source_files":      files,
		},
	}
	if err := formatter.Output(section); err != nil {
		return err
	}

	if cfg.Output.Verbose {
		color.Cyan("%d analyzable source files", len(files))
	}
	return nil
}
