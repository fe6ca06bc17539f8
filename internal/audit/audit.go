// Package audit submits flattened tool records to a completion model and
// reports descriptive bias that could skew automated tool selection.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kubiosec-ai/toolscan/internal/export"
	"github.com/kubiosec-ai/toolscan/internal/llm"
)

const defaultMaxTokens = 4096

// Auditor runs bias analysis over tool records.
type Auditor struct {
	client    llm.Client
	model     string
	maxTokens int
	log       *slog.Logger
}

// New creates an auditor using the given client and model name.
func New(client llm.Client, model string, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		client:    client,
		model:     model,
		maxTokens: defaultMaxTokens,
		log:       logger,
	}
}

// Analyze submits the records and returns the model's free-text report.
func (a *Auditor) Analyze(ctx context.Context, doc export.ReporterDocument) (string, error) {
	resp, err := a.chat(ctx, systemPrompt, doc)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// AnalyzeStructured submits the records and parses the reply into a
// typed Analysis.
func (a *Auditor) AnalyzeStructured(ctx context.Context, doc export.ReporterDocument) (*Analysis, error) {
	resp, err := a.chat(ctx, systemPrompt+structuredInstruction, doc)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &analysis); err != nil {
		return nil, fmt.Errorf("parsing structured analysis: %w", err)
	}
	return &analysis, nil
}

func (a *Auditor) chat(ctx context.Context, system string, doc export.ReporterDocument) (*llm.ChatResponse, error) {
	if len(doc.Tools) == 0 {
		return nil, fmt.Errorf("no tool records to analyze")
	}

	payload, err := json.MarshalIndent(doc.Tools, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool records: %w", err)
	}

	a.log.Info("submitting tool records for analysis", "tools", len(doc.Tools), "model", a.model)

	// Temperature 0 keeps audit output stable across runs.
	temperature := 0.0
	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Model:  a.model,
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Here is a list of tool declarations:\n\n" + string(payload)},
		},
		MaxTokens:   a.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("audit request: %w", err)
	}

	a.log.Info("analysis complete",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)
	return resp, nil
}

// stripFences removes a markdown code fence wrapper, which models emit
// around JSON even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
