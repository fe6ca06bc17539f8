// Package mcp wraps the MCP SDK client used to inventory server tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerConfig holds everything needed to launch and identify one
// stdio MCP server.
type ServerConfig struct {
	Name    string
	Command string
	Args    []string
	Env     map[string]string
}

// Tool is one tool descriptor as advertised by a server. InputSchema and
// Annotations are passed through verbatim as raw JSON.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Annotations json.RawMessage `json:"annotations"`
}

// Client wraps the MCP SDK client for a single server connection.
type Client struct {
	config  ServerConfig
	client  *mcpsdk.Client
	session *mcpsdk.ClientSession
}

// NewClient creates a new MCP client for the given server config.
func NewClient(config ServerConfig) *Client {
	return &Client{config: config}
}

// Connect spawns the server subprocess and performs the protocol
// handshake. Server env vars are injected into the subprocess
// environment only; the host process environment is never mutated.
func (c *Client) Connect(ctx context.Context) error {
	impl := &mcpsdk.Implementation{
		Name:    "toolscan",
		Version: "1.0.0",
	}
	c.client = mcpsdk.NewClient(impl, nil)

	cmd := exec.CommandContext(ctx, c.config.Command, c.config.Args...)
	cmd.Env = mergeEnviron(os.Environ(), c.config.Env)

	transport := &mcpsdk.CommandTransport{
		Command: cmd,
	}
	session, err := c.client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("mcp connect to %s: %w", c.config.Name, err)
	}
	c.session = session

	return nil
}

// ListTools returns every tool advertised by this server, in the order
// the server reports them.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	if c.session == nil {
		return nil, fmt.Errorf("mcp client not connected")
	}

	var tools []Tool
	for tool, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("mcp list tools from %s: %w", c.config.Name, err)
		}
		tools = append(tools, Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: rawJSON(tool.InputSchema),
			Annotations: rawJSON(tool.Annotations),
		})
	}

	return tools, nil
}

// Close gracefully closes the MCP connection.
func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

// ToolLister lists tools from one configured server. It exists so the
// orchestrator can be exercised against fakes.
type ToolLister interface {
	ListServerTools(ctx context.Context, config ServerConfig) ([]Tool, error)
}

// StdioLister is the production ToolLister: one subprocess session per
// call, torn down before returning.
type StdioLister struct{}

// ListServerTools connects, lists tools, and disconnects.
func (StdioLister) ListServerTools(ctx context.Context, config ServerConfig) ([]Tool, error) {
	client := NewClient(config)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	defer client.Close()

	return client.ListTools(ctx)
}

// rawJSON renders v as raw JSON, falling back to a quoted string
// rendering for values that cannot be marshaled.
func rawJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(fmt.Sprintf("%v", v))
	}
	return data
}
