// Package scan orchestrates concurrent tool extraction across every
// configured MCP server and assembles the consolidated run report.
package scan

import (
	"github.com/kubiosec-ai/toolscan/internal/mcp"
)

// Status is the outcome class of one server extraction.
type Status string

const (
	// StatusOK means a session was established and the tool listing
	// completed, even if the server advertises zero tools.
	StatusOK Status = "ok"
	// StatusFailed means the server never produced a tool listing.
	StatusFailed Status = "failed"
)

// FailureReason classifies a failed extraction.
type FailureReason string

const (
	// ReasonConnect covers spawn, handshake, and protocol failures.
	ReasonConnect FailureReason = "connect_error"
	// ReasonTimeout means the spawn+handshake+list sequence exceeded
	// the per-server deadline.
	ReasonTimeout FailureReason = "timeout"
	// ReasonInternal covers unexpected extractor errors (panics).
	ReasonInternal FailureReason = "internal_error"
)

// ServerResult is the outcome for one configured server. Exactly one is
// produced per server name, success or not; a failed server keeps its
// echoed config plus a typed reason so consumers can tell "listed zero
// tools" apart from "never ran".
type ServerResult struct {
	ServerName string            `json:"server_name"`
	Command    string            `json:"command"`
	Args       []string          `json:"args"`
	Env        map[string]string `json:"env"`
	Status     Status            `json:"status"`
	Reason     FailureReason     `json:"reason,omitempty"`
	Error      string            `json:"error,omitempty"`
	Tools      []mcp.Tool        `json:"tools"`
}
