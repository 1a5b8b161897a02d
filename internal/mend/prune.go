package mend

import (
	"fmt"

	"github.com/jsonmend/jsonmend/schema"
)

// Prune removes object members unsanctioned by the governing schema. A key
// is removed only when the schema declares additionalProperties:false and
// the key is neither a declared property nor a patternProperties match.
// Sanctioned members and array elements recurse; unconstrained subtrees are
// returned untouched.
func Prune(v any, n *schema.Node, path string) (any, []Change) {
	switch val := v.(type) {
	case map[string]any:
		if n == nil || n.Kind != schema.KindObject || n.Shapeless() {
			return v, nil
		}
		out := make(map[string]any, len(val))
		var changes []Change
		for _, k := range sortedKeys(val) {
			child := n.Child(k)
			if child == nil && !n.AdditionalAllowed {
				changes = append(changes, Change{
					Path:   field(path, k),
					Action: Removed,
					From:   val[k],
					Reason: fmt.Sprintf("property %q is not allowed (additionalProperties is false)", k),
				})
				continue
			}
			nv, cs := Prune(val[k], child, field(path, k))
			out[k] = nv
			changes = append(changes, cs...)
		}
		return out, changes
	case []any:
		if n == nil {
			return v, nil
		}
		out := make([]any, len(val))
		var changes []Change
		for i := range val {
			nv, cs := Prune(val[i], n.Item(), index(path, i))
			out[i] = nv
			changes = append(changes, cs...)
		}
		return out, changes
	default:
		return v, nil
	}
}
