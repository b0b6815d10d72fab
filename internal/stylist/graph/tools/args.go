package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SanitizeArguments normalises model-produced tool arguments. It never
// fails: arguments that are not a JSON object are passed through.
func SanitizeArguments(_ context.Context, name, arguments string) (string, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		return arguments, nil
	}

	switch name {
	case ToolSearchProduct:
		if v, ok := m["query"]; ok {
			m["query"] = trimAny(v)
		}
		if v, ok := m["category"]; ok {
			if s, isStr := v.(string); isStr {
				m["category"] = strings.TrimSpace(s)
			} else {
				delete(m, "category")
			}
		}
		if v, ok := m["max_results"]; ok {
			switch vv := v.(type) {
			case float64:
				m["max_results"] = clampInt(int(vv), 1, 20)
			case string:
				if n, err := strconv.Atoi(strings.TrimSpace(vv)); err == nil {
					m["max_results"] = clampInt(n, 1, 20)
				} else {
					delete(m, "max_results")
				}
			default:
				delete(m, "max_results")
			}
		}
	case ToolGetProductDetails:
		if v, ok := m["product_id"]; ok {
			m["product_id"] = trimAny(v)
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments, nil
	}
	return string(b), nil
}

// UnknownTool answers hallucinated tool names with a structured note the
// model can recover from.
func UnknownTool(_ context.Context, name, _ string) (string, error) {
	return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
}

func trimAny(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
