package export

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Filter keeps only rows matching the given expression. Expressions see
// the variables "server", "tool", and "description" and must evaluate
// to a boolean, e.g.:
//
//	server == "github" && hasPrefix(tool, "create_")
//	len(description) == 0
func Filter(rows []Row, source string) ([]Row, error) {
	if source == "" {
		return rows, nil
	}

	env := map[string]interface{}{
		"server":      "",
		"tool":        "",
		"description": "",
	}
	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter compile error: %w", err)
	}

	var kept []Row
	for _, row := range rows {
		result, err := expr.Run(program, map[string]interface{}{
			"server":      row.ServerName,
			"tool":        row.ToolName,
			"description": row.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("filter eval error for %q: %w", source, err)
		}
		if result.(bool) {
			kept = append(kept, row)
		}
	}
	return kept, nil
}
