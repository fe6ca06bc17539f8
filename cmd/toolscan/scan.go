package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubiosec-ai/toolscan/internal/config"
	"github.com/kubiosec-ai/toolscan/internal/mcp"
	"github.com/kubiosec-ai/toolscan/internal/scan"
	"github.com/kubiosec-ai/toolscan/internal/telemetry"
)

func newScanCmd() *cobra.Command {
	var (
		configPath  string
		outputPath  string
		serverName  string
		timeoutSecs int
		concurrency int
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Inventory tools exposed by every configured MCP server",
		Long: `Connect to each server in the configuration concurrently, list its
tools, and write one consolidated JSON report. A server that fails or
times out keeps its entry in the report with a typed failure reason;
it never aborts the other servers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Info("loaded configuration", "path", configPath, "servers", len(cfg.MCPServers))

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			ctx = telemetry.WithRunID(ctx, runID)

			orch := scan.NewOrchestrator(mcp.StdioLister{}, scan.Options{
				Timeout:     time.Duration(timeoutSecs) * time.Second,
				Concurrency: concurrency,
				DryRun:      dryRun,
				Logger:      logger,
			})

			report, err := orch.Run(ctx, cfg, serverName)
			if err != nil {
				return err
			}

			if outputPath == "-" {
				return report.Encode(os.Stdout)
			}
			if err := report.Save(outputPath); err != nil {
				return err
			}
			logger.Info("report written", "path", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.json", "Path to the mcpServers configuration file")
	cmd.Flags().StringVar(&outputPath, "output", "tool_report.json", "Path to the output report, or - for stdout")
	cmd.Flags().StringVar(&serverName, "server", "", "Process only the named server")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 30, "Per-server connection timeout in seconds")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum servers processed at once (0 = unbounded)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only parse the config, do not connect to servers")

	return cmd
}
