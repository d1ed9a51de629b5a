package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/bridgeplans/constants"
	"github.com/joseph-ayodele/bridgeplans/internal/export"
	"github.com/joseph-ayodele/bridgeplans/internal/pipeline"
)

const dirPrompt = "Enter the full path to the folder containing bridge plans (PDFs): "

var runOut string

var runCmd = &cobra.Command{
	Use:   "run [DIR]",
	Short: "Process every PDF in a folder and write the summary spreadsheet",
	Long: `Process every PDF directly inside DIR (sub-folders are not searched) and
write one row per file to <DIR>/output/bridge_work_summary.xlsx.

A file that cannot be read or understood still gets a row; its date column
carries "Error: <reason>". When DIR is omitted you are asked for it.

Examples:
  bridgeplans run ~/plans/2024
  bridgeplans run ~/plans/2024 --out summary.xlsx
  bridgeplans run --profile title-sheet-22x34 ~/plans/large`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := newLogger()
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			printError("Error: %v\n", err)
			return err
		}
		if err := cfg.ValidateLLM(); err != nil {
			printError("Error: %v\n", err)
			return err
		}

		var dir string
		if len(args) == 1 {
			dir = args[0]
		} else if dir, err = promptDir(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			printError("Error: %v\n", err)
			return err
		}

		out := runOut
		if out == "" {
			out = cfg.Output.Path
		}
		if out == "" {
			out = constants.DefaultOutputPath(dir)
		}

		extractor, region, closeEngine, err := buildExtractor(cfg, logger)
		if err != nil {
			printError("Error: %v\n", err)
			return err
		}
		defer func() {
			if cerr := closeEngine(); cerr != nil {
				logger.Warn("close ocr engine", "error", cerr)
			}
		}()

		proc := pipeline.NewProcessor(logger, extractor, region, buildModel(cfg, logger))
		batch := pipeline.NewBatch(proc, cmd.OutOrStdout(), logger)

		rows, err := batch.Run(ctx, dir)
		if err != nil {
			printError("Error: %v\n", err)
			return err
		}
		if err := export.WriteXLSX(rows, out, cfg.Output.Sheet, logger); err != nil {
			printError("Error: %v\n", err)
			return err
		}

		failed := 0
		for _, r := range rows {
			if r.Status == constants.DocumentStatusFailed {
				failed++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nExtraction complete (%d files, %d failed). Results saved to %s\n", len(rows), failed, out)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOut, "out", "", "output XLSX path (default: <DIR>/output/bridge_work_summary.xlsx)")
}

// promptDir asks for the input folder on in. Surrounding quotes from a pasted path are dropped.
func promptDir(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, dirPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read folder path: %w", err)
	}
	dir := strings.Trim(strings.TrimSpace(line), `"'`)
	if dir == "" {
		return "", errors.New("no folder given")
	}
	return dir, nil
}
