package jsonmend

import (
	"context"
	"runtime/debug"
)

// Engine binds the entry points to a schema-check capability. Engines are
// stateless apart from the Compiler's own internal caching and are safe for
// concurrent use; every call operates on a private working copy of its
// input.
type Engine struct {
	compiler Compiler
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompiler injects a schema-check capability, replacing the built-in
// draft-07 compiler.
func WithCompiler(c Compiler) Option {
	return func(e *Engine) {
		if c != nil {
			e.compiler = c
		}
	}
}

// New builds an Engine. Without options it uses the built-in draft-07
// compiler with an LRU cache of compiled schemas.
func New(opts ...Option) *Engine {
	e := &Engine{compiler: newDraft7Compiler()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// schemaObject rejects non-object schema input before any traversal.
func schemaObject(schema any) (map[string]any, *Error) {
	m, ok := schema.(map[string]any)
	if !ok {
		return nil, invalidInput("schema must be a JSON object, got %s", describe(schema))
	}
	return m, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "value"
	}
}

// guard converts a panic escaping an entry point into INTERNAL_ERROR so raw
// panics never propagate to callers.
func guard(err *error) {
	if r := recover(); r != nil {
		*err = internalError(r, debug.Stack())
	}
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
