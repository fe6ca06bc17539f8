package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Metadata summarizes one scan run.
type Metadata struct {
	RunID                 string  `json:"run_id"`
	Timestamp             string  `json:"timestamp"`
	ServersProcessed      int     `json:"servers_processed"`
	ServersSuccessful     int     `json:"servers_successful"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// Report is the consolidated output of one scan run. Immutable once
// assembled.
type Report struct {
	Metadata Metadata       `json:"metadata"`
	Servers  []ServerResult `json:"servers"`
}

// AssembleReport merges per-server results into a report. Pure: no I/O,
// no clock reads beyond the arguments. ServersSuccessful counts servers
// that established a session and listed zero or more tools, not merely
// servers whose task returned.
func AssembleReport(runID string, results []ServerResult, start time.Time, elapsed time.Duration) *Report {
	successful := 0
	for _, r := range results {
		if r.Status == StatusOK {
			successful++
		}
	}
	return &Report{
		Metadata: Metadata{
			RunID:                 runID,
			Timestamp:             start.UTC().Format(time.RFC3339),
			ServersProcessed:      len(results),
			ServersSuccessful:     successful,
			ProcessingTimeSeconds: elapsed.Seconds(),
		},
		Servers: results,
	}
}

// Encode writes the report as indented JSON.
func (r *Report) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Save writes the report to path as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
