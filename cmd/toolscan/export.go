package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubiosec-ai/toolscan/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		format     string
		filterExpr string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Flatten a scan report into CSV, JSON, or auditor input",
		Long: `Reshape a scan report (or a raw mcpServers configuration) into a flat
list of server/tool/description records. The reporter format produces
the {"tools": [...]} document the audit subcommand consumes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading input %s: %w", inputPath, err)
			}

			rows, err := export.ParseInput(data)
			if err != nil {
				return err
			}

			rows, err = export.Filter(rows, filterExpr)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outputPath, err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "json":
				return export.WriteJSON(w, rows)
			case "csv":
				return export.WriteCSV(w, rows)
			case "reporter":
				return export.WriteReporter(w, rows)
			default:
				return fmt.Errorf("unsupported format: %q (available: json, csv, reporter)", format)
			}
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "tool_report.json", "Path to the scan report or configuration file")
	cmd.Flags().StringVar(&outputPath, "output", "-", "Path to the output file, or - for stdout")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv, or reporter")
	cmd.Flags().StringVar(&filterExpr, "filter", "", `Row filter expression over server, tool, and description (e.g. 'server == "github"')`)

	return cmd
}
