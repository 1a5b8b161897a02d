package jsonmend_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/jsonmend/jsonmend"
)

func personSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":   map[string]any{"type": "string"},
			"age":    map[string]any{"type": "integer"},
			"active": map[string]any{"type": "boolean", "default": true},
		},
		"additionalProperties": false,
	}
}

func TestRepairText_FullPipeline(t *testing.T) {
	ctx := context.Background()
	text := []byte(`{'name': 'John', 'age': '30', 'extra': 'field',}`)

	res, err := jsonmend.RepairText(ctx, personSchema(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{"name": "John", "age": float64(30), "active": true}
	if !reflect.DeepEqual(res.Repaired, want) {
		t.Fatalf("repaired mismatch:\n got %#v\nwant %#v", res.Repaired, want)
	}

	if len(res.Changes) != 3 {
		t.Fatalf("expected three changes, got %v", res.Changes)
	}
	assertChange(t, res.Changes[0], "/extra", jsonmend.ChangeRemoved)
	assertChange(t, res.Changes[1], "/age", jsonmend.ChangeCoerced)
	assertChange(t, res.Changes[2], "/active", jsonmend.ChangeDefaulted)

	if !res.Valid {
		t.Fatalf("expected repaired value to validate, got %v", res.Errors)
	}
	if len(res.ParseErrors) == 0 {
		t.Fatalf("expected recovery diagnostics in ParseErrors")
	}
}

func assertChange(t *testing.T, c jsonmend.ChangeRecord, path string, action jsonmend.ChangeAction) {
	t.Helper()
	if c.Path != path || c.Action != action {
		t.Fatalf("expected %s at %s, got %s at %s", action, path, c.Action, c.Path)
	}
}

func TestRepair_RequiredScalarsNeverInvented(t *testing.T) {
	ctx := context.Background()
	schemaDoc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "string"},
			"data": map[string]any{"type": "string"},
		},
		"required": []any{"id", "data"},
	}

	res, err := jsonmend.Repair(ctx, schemaDoc, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, ok := res.Repaired.(map[string]any); !ok || len(m) != 0 {
		t.Fatalf("expected empty object, got %#v", res.Repaired)
	}
	if len(res.Changes) != 0 {
		t.Fatalf("expected empty ledger, got %v", res.Changes)
	}
	if res.Valid {
		t.Fatalf("expected residual invalidity")
	}
	required := 0
	for _, ve := range res.Errors {
		if ve.Keyword == "required" {
			required++
		}
	}
	if required != 2 {
		t.Fatalf("expected two required errors after repair, got %v", res.Errors)
	}
}

func TestRepair_Idempotence(t *testing.T) {
	ctx := context.Background()
	first, err := jsonmend.Repair(ctx, personSchema(), map[string]any{
		"name": "Ada", "age": "41", "extra": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := jsonmend.Repair(ctx, personSchema(), first.Repaired)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Changes) != 0 {
		t.Fatalf("expected fixed point with empty ledger, got %v", second.Changes)
	}
	if !reflect.DeepEqual(first.Repaired, second.Repaired) {
		t.Fatalf("fixed point drifted: %#v vs %#v", first.Repaired, second.Repaired)
	}
}

// A key both disallowed and type-mismatched yields only a removed record,
// never a coerced one: pruning runs first.
func TestRepair_PruneBeforeCoerce(t *testing.T) {
	ctx := context.Background()
	schemaDoc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "integer"},
		},
		"additionalProperties": false,
	}

	res, err := jsonmend.Repair(ctx, schemaDoc, map[string]any{"b": "5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("expected single change, got %v", res.Changes)
	}
	assertChange(t, res.Changes[0], "/b", jsonmend.ChangeRemoved)
}

// Repair never adds a key absent from the original unless its schema
// declares a default or its type is object/array.
func TestRepair_Conservativeness(t *testing.T) {
	ctx := context.Background()
	schemaDoc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"note":  map[string]any{"type": "string"},
			"meta":  map[string]any{"type": "object", "properties": map[string]any{"v": map[string]any{"type": "integer"}}},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"count": map[string]any{"type": "integer", "default": float64(0)},
		},
		"required": []any{"note", "meta", "tags"},
	}

	res, err := jsonmend.Repair(ctx, schemaDoc, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := res.Repaired.(map[string]any)
	if _, ok := m["note"]; ok {
		t.Fatalf("required scalar without default must stay absent, got %#v", m)
	}
	if !reflect.DeepEqual(m["meta"], map[string]any{}) {
		t.Fatalf("expected object skeleton for meta, got %#v", m["meta"])
	}
	if !reflect.DeepEqual(m["tags"], []any{}) {
		t.Fatalf("expected array skeleton for tags, got %#v", m["tags"])
	}
	if got := m["count"]; got != float64(0) {
		t.Fatalf("expected defaulted count, got %#v", got)
	}
}

// For the error kinds repair targets, the post-repair errors are a subset
// (by keyword+path) of the pre-repair errors.
func TestRepair_DoesNotRegress(t *testing.T) {
	ctx := context.Background()
	input := map[string]any{
		"name":  float64(7),
		"age":   "12.2",
		"extra": "gone",
	}

	before, err := jsonmend.Validate(ctx, personSchema(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rep, err := jsonmend.Repair(ctx, personSchema(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := jsonmend.Validate(ctx, personSchema(), rep.Repaired)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	had := map[string]bool{}
	for _, ve := range before.Errors {
		had[ve.Keyword+"|"+ve.Path] = true
	}
	for _, ve := range after.Errors {
		if !had[ve.Keyword+"|"+ve.Path] {
			t.Fatalf("repair introduced new error %s at %s", ve.Keyword, ve.Path)
		}
	}
}

func TestRepairText_Unrecoverable(t *testing.T) {
	ctx := context.Background()
	_, err := jsonmend.RepairText(ctx, personSchema(), []byte(`{"name": `))
	ee, ok := jsonmend.AsError(err)
	if !ok || ee.Code != jsonmend.CodeParseError {
		t.Fatalf("expected PARSE_ERROR, got %v", err)
	}
	if ee.Detail == "" {
		t.Fatalf("expected recovery diagnostics in error detail")
	}
}

func TestRepair_SchemaNotObject(t *testing.T) {
	ctx := context.Background()
	_, err := jsonmend.Repair(ctx, []any{}, map[string]any{})
	ee, ok := jsonmend.AsError(err)
	if !ok || ee.Code != jsonmend.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
