package mend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsonmend/jsonmend/schema"
)

// Coerce converts scalar leaves whose runtime type matches none of the
// schema's declared types. Targets are tried in schema declaration order and
// the first applicable rule wins; a value no rule can convert is left
// unchanged and unflagged. Values that already match recurse into their
// children instead of coercing.
func Coerce(v any, n *schema.Node, path string) (any, []Change) {
	if n == nil {
		return v, nil
	}
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		var changes []Change
		for _, k := range sortedKeys(val) {
			nv, cs := Coerce(val[k], n.Child(k), field(path, k))
			out[k] = nv
			changes = append(changes, cs...)
		}
		return out, changes
	case []any:
		out := make([]any, len(val))
		var changes []Change
		for i := range val {
			nv, cs := Coerce(val[i], n.Item(), index(path, i))
			out[i] = nv
			changes = append(changes, cs...)
		}
		return out, changes
	default:
		if len(n.Types) == 0 || matchesAny(val, n.Types) {
			return v, nil
		}
		for _, target := range n.Types {
			nv, ok := coerceScalar(val, target)
			if !ok {
				continue
			}
			changes := []Change{{
				Path:   path,
				Action: Coerced,
				From:   val,
				To:     nv,
				Reason: fmt.Sprintf("coerced %s to %s", runtimeType(val), target),
			}}
			// A scalar wrapped into an array gains children; let them meet
			// the items schema.
			if arr, isArr := nv.([]any); isArr {
				rv, cs := Coerce(arr, n, path)
				return rv, append(changes, cs...)
			}
			return nv, changes
		}
		return v, nil
	}
}

func matchesAny(v any, types []string) bool {
	for _, t := range types {
		if matches(v, t) {
			return true
		}
	}
	return false
}

func matches(v any, t string) bool {
	switch t {
	case "string":
		_, ok := v.(string)
		return ok
	case "number":
		_, ok := v.(float64)
		return ok
	case "integer":
		f, ok := v.(float64)
		return ok && f == math.Trunc(f)
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "null":
		return v == nil
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	default:
		return false
	}
}

// coerceScalar applies the fixed conversion table for one target type.
func coerceScalar(v any, target string) (any, bool) {
	switch target {
	case "string":
		switch t := v.(type) {
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(t), true
		case nil:
			return "null", true
		}
	case "number", "integer":
		switch t := v.(type) {
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				return nil, false
			}
			if target == "integer" {
				// Rounds to nearest rather than truncating: "30.7" -> 31.
				return math.Round(f), true
			}
			return f, true
		case bool:
			if t {
				return float64(1), true
			}
			return float64(0), true
		}
	case "boolean":
		switch t := v.(type) {
		case string:
			switch t {
			case "true", "1":
				return true, true
			case "false", "0", "":
				return false, true
			}
		case float64:
			return t != 0, true
		}
	case "array":
		switch v.(type) {
		case string, float64, bool:
			return []any{v}, true
		}
	case "null":
		if s, ok := v.(string); ok && (s == "" || s == "null") {
			return nil, true
		}
	}
	return nil, false
}

func runtimeType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
