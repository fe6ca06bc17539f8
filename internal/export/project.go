// Package export reshapes a scan report into flat projections for
// downstream consumers: CSV rows, flat JSON records, and the
// name+description list the bias auditor consumes.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Row is one flattened server/tool record.
type Row struct {
	ServerName  string `json:"server_name"`
	ToolName    string `json:"tool_name"`
	Description string `json:"description"`
}

// reportShape mirrors the subset of the scan report the projector reads.
type reportShape struct {
	Servers []struct {
		ServerName string `json:"server_name"`
		Tools      []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	} `json:"servers"`
}

// configShape mirrors the raw mcpServers configuration document.
type configShape struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// ParseInput flattens a JSON document into rows. Three object shapes
// are accepted, selected by marker key rather than duck typing: a raw
// configuration ("mcpServers") yields one row per server with empty
// tool fields, a scan report ("servers") yields one row per tool, and
// an auditor input document ("tools") yields one row per record. A
// JSON array of rows is passed through unchanged.
func ParseInput(data []byte) ([]Row, error) {
	var probe struct {
		MCPServers json.RawMessage `json:"mcpServers"`
		Servers    json.RawMessage `json:"servers"`
		Tools      json.RawMessage `json:"tools"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		// Not an object; try the flat array form.
		var rows []Row
		if arrErr := json.Unmarshal(data, &rows); arrErr == nil {
			return rows, nil
		}
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	switch {
	case probe.MCPServers != nil:
		var cfg configShape
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing mcpServers input: %w", err)
		}
		names := make([]string, 0, len(cfg.MCPServers))
		for name := range cfg.MCPServers {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([]Row, 0, len(names))
		for _, name := range names {
			// The raw config carries no tool information.
			rows = append(rows, Row{ServerName: name})
		}
		return rows, nil

	case probe.Servers != nil:
		var report reportShape
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("parsing report input: %w", err)
		}
		var rows []Row
		for _, server := range report.Servers {
			for _, tool := range server.Tools {
				rows = append(rows, Row{
					ServerName:  server.ServerName,
					ToolName:    tool.Name,
					Description: tool.Description,
				})
			}
		}
		return rows, nil

	case probe.Tools != nil:
		var doc ReporterDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing tools input: %w", err)
		}
		rows := make([]Row, 0, len(doc.Tools))
		for _, tool := range doc.Tools {
			rows = append(rows, Row{
				ToolName:    tool.Name,
				Description: tool.Description,
			})
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("unrecognized input: expected a %q, %q, or %q key", "mcpServers", "servers", "tools")
	}
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteCSV writes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"server_name", "tool_name", "description"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.ServerName, row.ToolName, row.Description}); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReporterTool is one entry in the auditor input format.
type ReporterTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReporterDocument is the {"tools": [...]} format the auditor consumes.
type ReporterDocument struct {
	Tools []ReporterTool `json:"tools"`
}

// ToReporter converts rows to the auditor input format. Rows without a
// description fall back to naming their server so the record is never
// empty.
func ToReporter(rows []Row) ReporterDocument {
	tools := make([]ReporterTool, 0, len(rows))
	for _, row := range rows {
		description := row.Description
		if description == "" {
			description = fmt.Sprintf("Server: %s", row.ServerName)
		}
		tools = append(tools, ReporterTool{Name: row.ToolName, Description: description})
	}
	return ReporterDocument{Tools: tools}
}

// WriteReporter writes rows in the auditor input format.
func WriteReporter(w io.Writer, rows []Row) error {
	data, err := json.MarshalIndent(ToReporter(rows), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reporter document: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
