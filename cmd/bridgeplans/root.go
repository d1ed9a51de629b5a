package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/bridgeplans/internal/common"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	profile   string
)

var rootCmd = &cobra.Command{
	Use:   "bridgeplans",
	Short: "Extract job numbers, proposed work and dates from bridge plan title sheets",
	Long: `bridgeplans reads the title sheet (first page) of every bridge plan PDF in a
folder, pulls the title-block text from the PDF text layer or OCR, cleans it up
and asks a language model for the job number, proposed work and date.

The results go to one spreadsheet per folder:
  <folder>/output/bridge_work_summary.xlsx`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./bridgeplans.yaml or ~/.bridgeplans/bridgeplans.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFormat, "log-format", "text", "log format: text or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&profile, "profile", "", "template profile to use (default from config: title-sheet)",
	)

	rootCmd.AddCommand(runCmd, extractCmd, configCmd, versionCmd)
}

// newLogger builds the process logger. Logs go to stderr so stdout stays
// readable for progress lines and extracted text.
func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(logFormat) {
	case "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("invalid --log-format %q (text or json)", logFormat)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, nil
}

// loadConfig reads configuration, applies --profile and validates the extraction settings.
func loadConfig() (*common.Config, error) {
	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}
