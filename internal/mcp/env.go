package mcp

import (
	"fmt"
	"sort"
	"strings"
)

// mergeEnviron returns base with overrides applied. A base entry whose
// variable name appears in overrides is replaced in place; remaining
// overrides are appended in sorted order so the result is deterministic.
func mergeEnviron(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	seen := make(map[string]bool, len(overrides))
	env := make([]string, 0, len(base)+len(overrides))

	for _, entry := range base {
		key := entry
		if i := strings.IndexByte(entry, '='); i >= 0 {
			key = entry[:i]
		}
		if value, ok := overrides[key]; ok {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
			seen[key] = true
			continue
		}
		env = append(env, entry)
	}

	extra := make([]string, 0, len(overrides))
	for key := range overrides {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		env = append(env, fmt.Sprintf("%s=%s", key, overrides[key]))
	}

	return env
}
