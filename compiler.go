package jsonmend

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// CheckFunc runs a compiled schema against an instance and returns every
// violation, normalized to the engine's error shape. A nil slice means the
// instance is valid.
type CheckFunc func(instance any) []ValidationError

// Compiler is the external schema-check capability. The engine never owns
// or resets its internal caching; implementations must be safe for
// concurrent use.
type Compiler interface {
	Compile(schema map[string]any) (CheckFunc, error)
}

const compileCacheSize = 128

// draft7Compiler is the default Compiler, backed by
// santhosh-tekuri/jsonschema with Draft7 and an LRU of compiled schemas
// keyed by canonical schema JSON.
type draft7Compiler struct {
	cache *lru.Cache[string, CheckFunc]
}

func newDraft7Compiler() *draft7Compiler {
	cache, err := lru.New[string, CheckFunc](compileCacheSize)
	if err != nil {
		// lru.New fails only for a non-positive size.
		panic(err)
	}
	return &draft7Compiler{cache: cache}
}

func (c *draft7Compiler) Compile(schema map[string]any) (CheckFunc, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	key := string(raw)
	if fn, ok := c.cache.Get(key); ok {
		return fn, nil
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	fn := CheckFunc(func(instance any) []ValidationError {
		err := compiled.Validate(instance)
		if err == nil {
			return nil
		}
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return []ValidationError{{
				Path:    "/",
				Keyword: "schema",
				Message: err.Error(),
			}}
		}
		errs := normalizeLeaves(ve, schema)
		sort.SliceStable(errs, func(i, j int) bool {
			if errs[i].Path != errs[j].Path {
				return errs[i].Path < errs[j].Path
			}
			return errs[i].Keyword < errs[j].Keyword
		})
		return errs
	})
	c.cache.Add(key, fn)
	return fn, nil
}

// normalizeLeaves flattens the validator's cause tree to its leaves and
// translates each into the engine's ValidationError shape. The validator
// reports all missing required properties (and all unexpected additional
// properties) of one object as a single error; those are split into one
// ValidationError per property name so each carries its own params.
func normalizeLeaves(ve *jsonschema.ValidationError, schema map[string]any) []ValidationError {
	var out []ValidationError
	for _, leaf := range flatten(ve) {
		keyword := keywordOf(leaf.KeywordLocation)
		path := normalizePointer(leaf.InstanceLocation)

		switch keyword {
		case "required":
			for _, name := range quotedNames(leaf.Message) {
				out = append(out, ValidationError{
					Path:       path,
					Keyword:    keyword,
					Message:    fmt.Sprintf("missing required property %q", name),
					Params:     map[string]any{"missingProperty": name},
					SchemaPath: leaf.KeywordLocation,
				})
			}
			continue
		case "additionalProperties":
			names := quotedNames(leaf.Message)
			if len(names) > 0 {
				for _, name := range names {
					out = append(out, ValidationError{
						Path:       path,
						Keyword:    keyword,
						Message:    fmt.Sprintf("additional property %q is not allowed", name),
						Params:     map[string]any{"additionalProperty": name},
						SchemaPath: leaf.KeywordLocation,
					})
				}
				continue
			}
		}

		out = append(out, ValidationError{
			Path:       path,
			Keyword:    keyword,
			Message:    leaf.Message,
			Params:     deriveParams(keyword, leaf, schema),
			SchemaPath: leaf.KeywordLocation,
		})
	}
	return out
}

func flatten(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flatten(cause)...)
	}
	return flat
}

// normalizePointer maps the validator's root location ("") to "/".
func normalizePointer(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}

// keywordOf extracts the failing keyword from a keyword location such as
// "/properties/age/minimum".
func keywordOf(keywordLocation string) string {
	segs := splitPointer(keywordLocation)
	for i := len(segs) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(segs[i]); err == nil {
			continue // branch index, e.g. anyOf/1
		}
		return segs[i]
	}
	return "schema"
}

var reQuotedName = regexp.MustCompile(`'([^']+)'`)

// deriveParams rebuilds the structured params the raw validator output does
// not carry: the keyword's schema value resolved at the keyword location,
// plus property names recovered from the message where the location cannot
// name them (required, additionalProperties).
func deriveParams(keyword string, leaf *jsonschema.ValidationError, schema map[string]any) map[string]any {
	kwValue, _ := resolveSchemaValue(schema, leaf.KeywordLocation)
	switch keyword {
	case "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum",
		"minLength", "maxLength", "minItems", "maxItems",
		"minProperties", "maxProperties":
		return map[string]any{"limit": kwValue}
	case "multipleOf":
		return map[string]any{"multipleOf": kwValue}
	case "pattern":
		return map[string]any{"pattern": kwValue}
	case "format":
		return map[string]any{"format": kwValue}
	case "enum":
		return map[string]any{"allowedValues": kwValue}
	case "const":
		return map[string]any{"allowedValue": kwValue}
	case "type":
		return map[string]any{"type": kwValue}
	default:
		return nil
	}
}

// quotedNames collects the 'quoted' property names from a validator message.
func quotedNames(message string) []string {
	var names []string
	for _, m := range reQuotedName.FindAllStringSubmatch(message, -1) {
		names = append(names, m[1])
	}
	return names
}

// resolveSchemaValue walks a keyword location inside the raw schema document
// and returns the value it points at.
func resolveSchemaValue(schema map[string]any, keywordLocation string) (any, bool) {
	var cur any = schema
	for _, seg := range splitPointer(keywordLocation) {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func splitPointer(ptr string) []string {
	var segs []string
	for _, seg := range strings.Split(ptr, "/") {
		if seg == "" || seg == "#" {
			continue
		}
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		segs = append(segs, seg)
	}
	return segs
}
