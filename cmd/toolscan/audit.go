package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kubiosec-ai/toolscan/internal/audit"
	"github.com/kubiosec-ai/toolscan/internal/export"
	"github.com/kubiosec-ai/toolscan/internal/llm"
)

func newAuditCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		model      string
		structured bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Analyze tool descriptions for selection bias",
		Long: `Submit the flattened tool records to a completion model and report
descriptive bias: overlapping functionality, persuasive or informal
wording, attention-seeking language, and predicted selection precedence
among overlapping tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading input %s: %w", inputPath, err)
			}
			rows, err := export.ParseInput(data)
			if err != nil {
				return err
			}
			doc := export.ToReporter(rows)

			client, modelName := llm.NewClientForModel(model)
			auditor := audit.New(client, modelName, logger)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			var w io.Writer = os.Stdout
			if outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outputPath, err)
				}
				defer f.Close()
				w = f
			}

			if structured {
				analysis, err := auditor.AnalyzeStructured(ctx, doc)
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(analysis, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding analysis: %w", err)
				}
				_, err = fmt.Fprintf(w, "%s\n", out)
				return err
			}

			text, err := auditor.Analyze(ctx, doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s\n", text)
			return err
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "tool_report.json", "Path to the scan report, flat record list, or configuration file")
	cmd.Flags().StringVar(&outputPath, "output", "-", "Path to the output file, or - for stdout")
	cmd.Flags().StringVar(&model, "model", "claude-sonnet-4-20250514", "Model to use, optionally prefixed with the provider (e.g. openai/gpt-4o)")
	cmd.Flags().BoolVar(&structured, "structured", false, "Emit a typed JSON analysis instead of free text")

	return cmd
}
