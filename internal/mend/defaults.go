package mend

import (
	"fmt"

	"github.com/jsonmend/jsonmend/schema"
)

// ApplyDefaults fills gaps the earlier passes left behind. It deep-copies
// schema defaults into missing positions, substitutes empty container
// skeletons for missing required object/array properties, and replaces
// non-object values where an object is expected. It never invents a scalar:
// a required scalar with no default stays absent and surfaces only through
// the final validation pass.
func ApplyDefaults(v any, n *schema.Node, path string) (any, []Change) {
	if n == nil {
		return v, nil
	}
	switch n.Kind {
	case schema.KindObject:
		return defaultObject(v, n, path)
	case schema.KindArray:
		return defaultArray(v, n, path)
	default:
		// Scalar/unconstrained positions that exist keep their value; the
		// absent-with-default case is the parent's responsibility.
		return v, nil
	}
}

func defaultObject(v any, n *schema.Node, path string) (any, []Change) {
	m, ok := v.(map[string]any)
	if !ok {
		if n.HasDefault {
			return DeepCopy(n.Default), []Change{{
				Path:   path,
				Action: Defaulted,
				From:   v,
				To:     DeepCopy(n.Default),
				Reason: "replaced non-object value with schema default",
			}}
		}
		if n.Shapeless() {
			return v, nil
		}
		// Substitute a skeleton and fall through to per-property defaulting.
		m = map[string]any{}
		changes := []Change{{
			Path:   path,
			Action: Added,
			From:   v,
			To:     map[string]any{},
			Reason: "replaced non-object value with object skeleton",
		}}
		nv, cs := fillProperties(m, n, path)
		return nv, append(changes, cs...)
	}
	if n.Shapeless() {
		return v, nil
	}
	return fillProperties(m, n, path)
}

func fillProperties(m map[string]any, n *schema.Node, path string) (any, []Change) {
	out := make(map[string]any, len(m))
	for k, vv := range m {
		out[k] = vv
	}
	var changes []Change

	// Declared properties: recurse present values, fill missing ones.
	for _, name := range n.Names {
		child := n.Properties[name]
		at := field(path, name)
		if cur, present := out[name]; present {
			nv, cs := ApplyDefaults(cur, child, at)
			out[name] = nv
			changes = append(changes, cs...)
			continue
		}
		switch {
		case child.HasDefault:
			dv := DeepCopy(child.Default)
			out[name] = dv
			changes = append(changes, Change{
				Path:   at,
				Action: Defaulted,
				To:     DeepCopy(child.Default),
				Reason: fmt.Sprintf("missing property %q filled from schema default", name),
			})
			// A defaulted container may itself have gaps.
			nv, cs := ApplyDefaults(dv, child, at)
			out[name] = nv
			changes = append(changes, cs...)
		case n.IsRequired(name) && child != nil && child.Kind == schema.KindObject:
			skel := map[string]any{}
			out[name] = skel
			changes = append(changes, Change{
				Path:   at,
				Action: Added,
				To:     map[string]any{},
				Reason: fmt.Sprintf("missing required property %q assigned empty object", name),
			})
			nv, cs := ApplyDefaults(skel, child, at)
			out[name] = nv
			changes = append(changes, cs...)
		case n.IsRequired(name) && child != nil && child.Kind == schema.KindArray:
			out[name] = []any{}
			changes = append(changes, Change{
				Path:   at,
				Action: Added,
				To:     []any{},
				Reason: fmt.Sprintf("missing required property %q assigned empty array", name),
			})
		default:
			// Required scalar without a default: left absent on purpose.
		}
	}

	// patternProperties-governed members still recurse.
	for _, k := range sortedKeys(out) {
		if _, declared := n.Properties[k]; declared {
			continue
		}
		child := n.Child(k)
		if child == nil {
			continue
		}
		nv, cs := ApplyDefaults(out[k], child, field(path, k))
		out[k] = nv
		changes = append(changes, cs...)
	}
	return out, changes
}

func defaultArray(v any, n *schema.Node, path string) (any, []Change) {
	arr, ok := v.([]any)
	if !ok {
		if n.HasDefault {
			return DeepCopy(n.Default), []Change{{
				Path:   path,
				Action: Defaulted,
				From:   v,
				To:     DeepCopy(n.Default),
				Reason: "replaced non-array value with schema default",
			}}
		}
		// No skeleton substitution for arrays.
		return v, nil
	}
	out := make([]any, len(arr))
	var changes []Change
	for i := range arr {
		nv, cs := ApplyDefaults(arr[i], n.Item(), index(path, i))
		out[i] = nv
		changes = append(changes, cs...)
	}
	return out, changes
}
