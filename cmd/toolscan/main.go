// Package main is the entry point for the toolscan CLI tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubiosec-ai/toolscan/internal/telemetry"
)

// Version information set at build time.
var version = "1.0.0"

// Global flags.
var (
	verbose bool
	runID   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "toolscan",
		Short: "MCP server tool inventory and description auditor",
		Long: `toolscan connects to every MCP server declared in a configuration
file, inventories the tools each one exposes, and flattens the result
into projections suitable for auditing tool descriptions for bias that
could mislead an automated tool-selecting agent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	root.PersistentFlags().StringVar(&runID, "run-id", "", "Set explicit run ID")

	root.AddCommand(newScanCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newAuditCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return telemetry.NewLogger(os.Stderr, level)
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
