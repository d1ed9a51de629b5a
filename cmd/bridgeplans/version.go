package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=...".
var (
	Version = "dev"
	Commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bridgeplans %s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  Go:     %s\n", runtime.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "  Commit: %s\n", Commit)
	},
}
