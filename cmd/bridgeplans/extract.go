package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/bridgeplans/internal/normalize"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Show the title-block text of one PDF without calling the model",
	Long: `Run text extraction and normalization on a single PDF and print both
versions of the text. Useful for tuning a template profile region.

No API key is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			printError("Error: %v\n", err)
			return err
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

		res, err := extractor.Extract(cmd.Context(), args[0], region)
		if err != nil {
			printError("Error: %v\n", err)
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "method:   %s\n", res.Method)
		if res.Engine != "" {
			fmt.Fprintf(w, "engine:   %s (confidence %.2f)\n", res.Engine, res.Confidence)
		}
		fmt.Fprintf(w, "region:   %s\n", regionString(region))
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "warning:  %s\n", warn)
		}
		fmt.Fprintf(w, "\n--- raw ---\n%s\n", res.Text)
		fmt.Fprintf(w, "\n--- normalized ---\n%s\n", normalize.Normalize(res.Text))
		if ids := normalize.FindJobNumbers(normalize.Normalize(res.Text)); len(ids) > 0 {
			fmt.Fprintf(w, "\njob numbers seen: %s\n", normalize.JoinJobNumbers(ids))
		}
		return nil
	},
}
