package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

const reportInput = `{
	"metadata": {"servers_processed": 2, "servers_successful": 2},
	"servers": [
		{
			"server_name": "github",
			"tools": [
				{"name": "create_issue", "description": "Creates an issue"},
				{"name": "list_repos", "description": "Lists repositories"}
			]
		},
		{
			"server_name": "empty",
			"tools": []
		}
	]
}`

const configInput = `{
	"mcpServers": {
		"zeta": {"command": "z"},
		"alpha": {"command": "a"}
	}
}`

func TestParseInputReportShape(t *testing.T) {
	rows, err := ParseInput([]byte(reportInput))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}

	want := []Row{
		{ServerName: "github", ToolName: "create_issue", Description: "Creates an issue"},
		{ServerName: "github", ToolName: "list_repos", Description: "Lists repositories"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %+v, got %+v", want, rows)
	}
}

func TestParseInputConfigShape(t *testing.T) {
	rows, err := ParseInput([]byte(configInput))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}

	// Server names sorted, no tool information in the raw config.
	want := []Row{
		{ServerName: "alpha"},
		{ServerName: "zeta"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %+v, got %+v", want, rows)
	}
}

func TestParseInputFlatArray(t *testing.T) {
	input := `[{"server_name": "s", "tool_name": "t", "description": "d"}]`
	rows, err := ParseInput([]byte(input))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if len(rows) != 1 || rows[0].ToolName != "t" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParseInputToolsShape(t *testing.T) {
	input := `{"tools": [
		{"name": "create_issue", "description": "Creates an issue"},
		{"name": "bare", "description": "Server: github"}
	]}`
	rows, err := ParseInput([]byte(input))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}

	want := []Row{
		{ToolName: "create_issue", Description: "Creates an issue"},
		{ToolName: "bare", Description: "Server: github"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %+v, got %+v", want, rows)
	}
}

func TestReporterRoundTrip(t *testing.T) {
	// The reporter format written by export must parse back in, since
	// the audit subcommand consumes it through ParseInput.
	rows := []Row{
		{ServerName: "github", ToolName: "create_issue", Description: "Creates an issue"},
		{ServerName: "bare", ToolName: ""},
	}

	var buf bytes.Buffer
	if err := WriteReporter(&buf, rows); err != nil {
		t.Fatalf("WriteReporter: %v", err)
	}

	parsed, err := ParseInput(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseInput of reporter output: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(parsed))
	}
	if parsed[0].ToolName != "create_issue" || parsed[0].Description != "Creates an issue" {
		t.Errorf("unexpected first row: %+v", parsed[0])
	}
	if parsed[1].Description != "Server: bare" {
		t.Errorf("expected fallback description to survive the round trip, got %q", parsed[1].Description)
	}
}

func TestParseInputUnrecognized(t *testing.T) {
	_, err := ParseInput([]byte(`{"something": "else"}`))
	if err == nil {
		t.Fatal("expected error for unrecognized shape, got nil")
	}
}

func TestParseInputInvalidJSON(t *testing.T) {
	_, err := ParseInput([]byte(`not json`))
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{ServerName: "github", ToolName: "create_issue", Description: "Creates an issue"},
		{ServerName: "slack", ToolName: "post_message", Description: "Posts, with commas"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "server_name,tool_name,description\n" +
		"github,create_issue,Creates an issue\n" +
		"slack,post_message,\"Posts, with commas\"\n"
	if buf.String() != want {
		t.Errorf("unexpected CSV:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("expected empty array, got %q", got)
	}
}

func TestToReporterFallbackDescription(t *testing.T) {
	rows := []Row{
		{ServerName: "github", ToolName: "create_issue", Description: "Creates an issue"},
		{ServerName: "bare", ToolName: ""},
	}

	doc := ToReporter(rows)
	if len(doc.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(doc.Tools))
	}
	if doc.Tools[0].Description != "Creates an issue" {
		t.Errorf("unexpected description: %q", doc.Tools[0].Description)
	}
	if doc.Tools[1].Description != "Server: bare" {
		t.Errorf("expected server fallback description, got %q", doc.Tools[1].Description)
	}
}

func TestWriteReporterShape(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{{ServerName: "s", ToolName: "t", Description: "d"}}
	if err := WriteReporter(&buf, rows); err != nil {
		t.Fatalf("WriteReporter: %v", err)
	}

	var doc ReporterDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding reporter document: %v", err)
	}
	if len(doc.Tools) != 1 || doc.Tools[0].Name != "t" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestFilter(t *testing.T) {
	rows := []Row{
		{ServerName: "github", ToolName: "create_issue", Description: "Creates an issue"},
		{ServerName: "slack", ToolName: "post_message", Description: ""},
	}

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"by server", `server == "github"`, 1},
		{"by tool prefix", `hasPrefix(tool, "create_")`, 1},
		{"empty description", `len(description) == 0`, 1},
		{"match all", `true`, 2},
		{"match none", `tool == "nope"`, 0},
		{"no expression", ``, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(rows, tt.source)
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d rows, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFilterCompileError(t *testing.T) {
	_, err := Filter([]Row{{}}, `server ==`)
	if err == nil {
		t.Fatal("expected compile error, got nil")
	}
}

func TestFilterNonBoolean(t *testing.T) {
	_, err := Filter([]Row{{}}, `server + tool`)
	if err == nil {
		t.Fatal("expected error for non-boolean expression, got nil")
	}
}
