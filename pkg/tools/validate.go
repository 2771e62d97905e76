package tools

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateArguments checks args against the tool's parameters and returns
// the normalized string arguments with defaults applied.
// Arguments the tool does not declare are ignored.
func ValidateArguments(def ToolDef, args map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(def.Params))

	for _, param := range def.Params {
		raw, present := args[param.Name]
		if !present || raw == nil {
			if param.Required {
				return nil, InvalidArgumentError(param.Name, "parameter is required")
			}
			if param.Default != "" {
				normalized[param.Name] = param.Default
			}
			continue
		}

		switch param.Type {
		case ParamTypeString:
			str, ok := raw.(string)
			if !ok {
				return nil, InvalidArgumentError(param.Name, "expected a string, got %s", jsonType(raw))
			}
			str = strings.TrimSpace(str)
			if str == "" {
				if param.Required {
					return nil, InvalidArgumentError(param.Name, "parameter is required and must not be empty")
				}
				if param.Default != "" {
					normalized[param.Name] = param.Default
				}
				continue
			}
			if len(param.Enum) > 0 && !slices.Contains(param.Enum, str) {
				return nil, InvalidArgumentError(param.Name, "%q is not one of %s", str, strings.Join(param.Enum, ", "))
			}
			normalized[param.Name] = str
		default:
			return nil, fmt.Errorf("unsupported parameter type %q for %s", param.Type, param.Name)
		}
	}

	return normalized, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
