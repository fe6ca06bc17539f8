// Package config loads the MCP server configuration consumed by a scan.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig declares how one MCP server is launched.
type ServerConfig struct {
	Command string            `json:"command" yaml:"command"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Config is the root configuration document. The JSON shape matches the
// Claude Desktop convention: a "mcpServers" object keyed by server name.
type Config struct {
	MCPServers map[string]ServerConfig `json:"mcpServers" yaml:"mcpServers"`
}

// Load reads and parses a configuration file. YAML is selected by the
// .yaml/.yml extension; everything else is parsed as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// ServerNames returns the configured server names in sorted order.
// JSON object keys carry no order, so sorted-name order is the canonical
// iteration order for a run; it keeps report output stable across runs.
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.MCPServers))
	for name := range c.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
