package mend

import "sort"

// DeepCopy clones a JSON-shaped value (nil/bool/float64/string/[]any/
// map[string]any). The engine copies the caller's input once so every pass
// mutates only call-private state; defaults are copied again on application
// so ledger entries never alias the schema document.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = DeepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = DeepCopy(t[i])
		}
		return out
	default:
		return v
	}
}

// sortedKeys returns map keys in sorted order. Go maps do not preserve
// insertion order, so every pass iterates sorted keys to keep the ledger
// and the repaired value deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
