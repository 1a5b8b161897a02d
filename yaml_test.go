package jsonmend_test

import (
	"context"
	"testing"

	"github.com/jsonmend/jsonmend"
)

func TestSchemaFromYAML(t *testing.T) {
	data := []byte(`
type: object
properties:
  port:
    type: integer
    default: 8080
additionalProperties: false
`)
	schemaDoc, err := jsonmend.SchemaFromYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	res, err := jsonmend.Repair(ctx, schemaDoc, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := res.Repaired.(map[string]any)
	if m["port"] != float64(8080) {
		t.Fatalf("expected YAML default normalized to float64, got %#v", m["port"])
	}
}

func TestSchemaFromYAML_NotMapping(t *testing.T) {
	if _, err := jsonmend.SchemaFromYAML([]byte(`- a`)); err == nil {
		t.Fatalf("expected error for non-mapping document")
	}
}

func TestValueFromYAML_Normalization(t *testing.T) {
	v, err := jsonmend.ValueFromYAML([]byte("items:\n  - 1\n  - two\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %#v", v)
	}
	arr, ok := m["items"].([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("expected two items, got %#v", m["items"])
	}
	if arr[0] != float64(1) || arr[1] != "two" {
		t.Fatalf("expected [1 two] with float64 numbers, got %#v", arr)
	}
}
