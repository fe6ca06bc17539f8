package mcp

import (
	"context"
	"encoding/json"
	"os"
	"reflect"
	"testing"
)

// --- mergeEnviron ---

func TestMergeEnvironNoOverrides(t *testing.T) {
	base := []string{"PATH=/bin", "HOME=/home/u"}
	got := mergeEnviron(base, nil)
	if !reflect.DeepEqual(got, base) {
		t.Errorf("expected base unchanged, got %v", got)
	}
}

func TestMergeEnvironReplaceInPlace(t *testing.T) {
	base := []string{"PATH=/bin", "API_KEY=old", "HOME=/home/u"}
	got := mergeEnviron(base, map[string]string{"API_KEY": "new"})
	want := []string{"PATH=/bin", "API_KEY=new", "HOME=/home/u"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMergeEnvironAppendsSorted(t *testing.T) {
	base := []string{"PATH=/bin"}
	got := mergeEnviron(base, map[string]string{"ZVAR": "z", "AVAR": "a"})
	want := []string{"PATH=/bin", "AVAR=a", "ZVAR=z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMergeEnvironDoesNotMutateHost(t *testing.T) {
	const key = "TOOLSCAN_MERGE_TEST_VAR"
	if _, ok := os.LookupEnv(key); ok {
		t.Fatalf("%s unexpectedly set in test environment", key)
	}

	_ = mergeEnviron(os.Environ(), map[string]string{key: "injected"})

	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s leaked into the host environment", key)
	}
}

func TestMergeEnvironKeepsEntryWithoutEquals(t *testing.T) {
	// Malformed entries pass through untouched.
	base := []string{"JUSTAKEY"}
	got := mergeEnviron(base, map[string]string{"OTHER": "v"})
	want := []string{"JUSTAKEY", "OTHER=v"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// --- rawJSON ---

func TestRawJSONNil(t *testing.T) {
	if got := string(rawJSON(nil)); got != "null" {
		t.Errorf("expected null, got %s", got)
	}
}

func TestRawJSONObject(t *testing.T) {
	got := rawJSON(map[string]any{"type": "object"})
	var decoded map[string]any
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if decoded["type"] != "object" {
		t.Errorf("unexpected round trip: %v", decoded)
	}
}

func TestRawJSONFallback(t *testing.T) {
	// Channels cannot be marshaled; the fallback renders a string.
	got := rawJSON(make(chan int))
	var s string
	if err := json.Unmarshal(got, &s); err != nil {
		t.Fatalf("fallback is not a JSON string: %s", got)
	}
}

// --- Client ---

func TestClientListToolsNotConnected(t *testing.T) {
	client := NewClient(ServerConfig{Name: "test"})
	_, err := client.ListTools(context.Background())
	if err == nil {
		t.Fatal("expected error when listing tools before connect, got nil")
	}
}

func TestClientCloseNotConnected(t *testing.T) {
	client := NewClient(ServerConfig{Name: "test"})
	if err := client.Close(); err != nil {
		t.Errorf("expected no error closing unconnected client, got %v", err)
	}
}

func TestServerConfigConstruction(t *testing.T) {
	config := ServerConfig{
		Name:    "github",
		Command: "npx",
		Args:    []string{"-y", "@modelcontextprotocol/server-github"},
		Env:     map[string]string{"GITHUB_TOKEN": "secret"},
	}

	if config.Name != "github" {
		t.Errorf("expected Name='github', got %q", config.Name)
	}
	if len(config.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(config.Args))
	}
	if config.Env["GITHUB_TOKEN"] != "secret" {
		t.Errorf("unexpected env: %v", config.Env)
	}
}
