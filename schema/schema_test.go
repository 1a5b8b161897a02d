package schema

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_ObjectNode(t *testing.T) {
	n, err := Parse(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"b": map[string]any{"type": "string"},
			"a": map[string]any{"type": "integer", "default": float64(1)},
		},
		"required":             []any{"a"},
		"additionalProperties": false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Kind != KindObject {
		t.Fatalf("expected object kind, got %v", n.Kind)
	}
	if !reflect.DeepEqual(n.Names, []string{"a", "b"}) {
		t.Fatalf("expected sorted names, got %v", n.Names)
	}
	if n.AdditionalAllowed {
		t.Fatalf("expected additionalProperties false")
	}
	if !n.IsRequired("a") || n.IsRequired("b") {
		t.Fatalf("required mismatch: %v", n.Required)
	}
	a := n.Child("a")
	if a == nil || !a.HasDefault || a.Default != float64(1) {
		t.Fatalf("unexpected child a: %+v", a)
	}
}

func TestParse_TypeSetAndKinds(t *testing.T) {
	cases := []struct {
		name  string
		raw   map[string]any
		kind  Kind
		types []string
	}{
		{"type set keeps order", map[string]any{"type": []any{"string", "number"}}, KindScalar, []string{"string", "number"}},
		{"items implies array", map[string]any{"items": map[string]any{"type": "string"}}, KindArray, nil},
		{"properties imply object", map[string]any{"properties": map[string]any{"x": map[string]any{}}}, KindObject, nil},
		{"empty is unconstrained", map[string]any{}, KindAny, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Kind != tc.kind {
				t.Fatalf("kind %v, want %v", n.Kind, tc.kind)
			}
			if !reflect.DeepEqual(n.Types, tc.types) {
				t.Fatalf("types %v, want %v", n.Types, tc.types)
			}
		})
	}
}

func TestChild_PropertiesBeforePatterns(t *testing.T) {
	n, err := Parse(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x-exact": map[string]any{"type": "integer"},
		},
		"patternProperties": map[string]any{
			"^x-": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := n.Child("x-exact"); c == nil || !c.Allows("integer") {
		t.Fatalf("declared property must win over pattern, got %+v", c)
	}
	if c := n.Child("x-other"); c == nil || !c.Allows("string") || c.Allows("integer") {
		t.Fatalf("pattern match expected, got %+v", c)
	}
	if c := n.Child("plain"); c != nil {
		t.Fatalf("unmatched member must be unconstrained, got %+v", c)
	}
}

func TestItem_SingleSchemaForAllIndexes(t *testing.T) {
	n, err := Parse(map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "boolean"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it := n.Item(); it == nil || !it.Allows("boolean") {
		t.Fatalf("unexpected items node %+v", n.Item())
	}

	// Tuple-form items fall outside the subset and read as unconstrained.
	n, err = Parse(map[string]any{
		"type":  "array",
		"items": []any{map[string]any{"type": "string"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Item() != nil {
		t.Fatalf("tuple items must be ignored, got %+v", n.Item())
	}
}

func TestParse_InvalidPatternRegex(t *testing.T) {
	_, err := Parse(map[string]any{
		"patternProperties": map[string]any{
			"[": map[string]any{"type": "string"},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "patternProperties") {
		t.Fatalf("expected regex compile error, got %v", err)
	}
}

func TestShapeless(t *testing.T) {
	n, err := Parse(map[string]any{"type": "object", "additionalProperties": false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.Shapeless() {
		t.Fatalf("object without properties must be shapeless")
	}
	n, err = Parse(map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Shapeless() {
		t.Fatalf("object with properties must not be shapeless")
	}
}

func TestAllows_EmptySetAllowsEverything(t *testing.T) {
	var n *Node
	if !n.Allows("string") {
		t.Fatalf("nil node must allow everything")
	}
	parsed, err := Parse(map[string]any{"type": "string"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Allows("string") || parsed.Allows("number") {
		t.Fatalf("declared set mismatch: %v", parsed.Types)
	}
}
