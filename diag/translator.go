// Package diag translates structured validation errors into human-readable
// explanations and suggestions, selected from a fixed table keyed on the
// failing draft-07 keyword.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// Hint is the translated guidance for one validation error.
type Hint struct {
	Explanation string
	Suggestion  string
}

// Translator retrieves guidance for a failing keyword. params carries the
// structured detail of the error (for example "limit" or "allowedValues")
// and path is the instance JSON Pointer.
type Translator interface {
	Hint(keyword string, params map[string]any, path string) Hint
}

var currentTranslator Translator = tableTranslator{}

// SetTranslator replaces the Translator implementation. Passing nil restores
// the built-in table.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = tableTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches guidance for the given keyword using the current Translator.
func T(keyword string, params map[string]any, path string) Hint {
	return currentTranslator.Hint(keyword, params, path)
}

// HumanPath renders a JSON Pointer for prose: root becomes "root", anything
// else is quoted.
func HumanPath(path string) string {
	if path == "" || path == "/" {
		return "root"
	}
	return fmt.Sprintf("%q", path)
}

// tableTranslator is the built-in fixed-table Translator. It is pure and
// total: every keyword yields a Hint, unknown keywords fall back to a
// generic template.
type tableTranslator struct{}

func (tableTranslator) Hint(keyword string, params map[string]any, path string) Hint {
	at := HumanPath(path)
	p := func(key string) any { return params[key] }

	switch keyword {
	case "type":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s has the wrong type; the schema expects %s.", at, formatAny(p("type"))),
			Suggestion:  fmt.Sprintf("Change the value at %s to type %s.", at, formatAny(p("type"))),
		}
	case "required":
		prop := p("missingProperty")
		if prop == nil {
			prop = "a required property"
		}
		return Hint{
			Explanation: fmt.Sprintf("The object at %s is missing required property %s.", at, formatAny(prop)),
			Suggestion:  fmt.Sprintf("Add the %s property to the object at %s.", formatAny(prop), at),
		}
	case "additionalProperties":
		if name := p("additionalProperty"); name != nil {
			return Hint{
				Explanation: fmt.Sprintf("The object at %s contains property %s which the schema does not allow.", at, formatAny(name)),
				Suggestion:  fmt.Sprintf("Remove the %s property from the object at %s, or extend the schema to allow it.", formatAny(name), at),
			}
		}
		return Hint{
			Explanation: fmt.Sprintf("The object at %s contains properties the schema does not allow.", at),
			Suggestion:  fmt.Sprintf("Remove the unexpected properties from the object at %s, or extend the schema to allow them.", at),
		}
	case "enum":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s is not one of the allowed values.", at),
			Suggestion:  fmt.Sprintf("Use one of the allowed values: %s.", formatAny(p("allowedValues"))),
		}
	case "const":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s must equal the constant declared by the schema.", at),
			Suggestion:  fmt.Sprintf("Set the value at %s to %s.", at, formatAny(p("allowedValue"))),
		}
	case "minimum":
		return Hint{
			Explanation: fmt.Sprintf("The number at %s is below the minimum of %s.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Increase the value at %s to at least %s.", at, formatAny(p("limit"))),
		}
	case "exclusiveMinimum":
		return Hint{
			Explanation: fmt.Sprintf("The number at %s must be strictly greater than %s.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Increase the value at %s above %s.", at, formatAny(p("limit"))),
		}
	case "maximum":
		return Hint{
			Explanation: fmt.Sprintf("The number at %s exceeds the maximum of %s.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Decrease the value at %s to at most %s.", at, formatAny(p("limit"))),
		}
	case "exclusiveMaximum":
		return Hint{
			Explanation: fmt.Sprintf("The number at %s must be strictly less than %s.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Decrease the value at %s below %s.", at, formatAny(p("limit"))),
		}
	case "minLength":
		return Hint{
			Explanation: fmt.Sprintf("The string at %s is shorter than %s characters.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Lengthen the string at %s to at least %s characters.", at, formatAny(p("limit"))),
		}
	case "maxLength":
		return Hint{
			Explanation: fmt.Sprintf("The string at %s is longer than %s characters.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Shorten the string at %s to at most %s characters.", at, formatAny(p("limit"))),
		}
	case "pattern":
		return Hint{
			Explanation: fmt.Sprintf("The string at %s does not match the required pattern %s.", at, formatAny(p("pattern"))),
			Suggestion:  fmt.Sprintf("Adjust the string at %s to match the pattern %s.", at, formatAny(p("pattern"))),
		}
	case "format":
		return Hint{
			Explanation: fmt.Sprintf("The string at %s is not a valid %s.", at, formatAny(p("format"))),
			Suggestion:  fmt.Sprintf("Provide a value at %s that conforms to the %s format.", at, formatAny(p("format"))),
		}
	case "minItems":
		return Hint{
			Explanation: fmt.Sprintf("The array at %s has fewer than %s items.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Add items to the array at %s until it has at least %s.", at, formatAny(p("limit"))),
		}
	case "maxItems":
		return Hint{
			Explanation: fmt.Sprintf("The array at %s has more than %s items.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Remove items from the array at %s until it has at most %s.", at, formatAny(p("limit"))),
		}
	case "uniqueItems":
		return Hint{
			Explanation: fmt.Sprintf("The array at %s contains duplicate items.", at),
			Suggestion:  fmt.Sprintf("Remove the duplicate items from the array at %s.", at),
		}
	case "minProperties":
		return Hint{
			Explanation: fmt.Sprintf("The object at %s has fewer than %s properties.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Add properties to the object at %s until it has at least %s.", at, formatAny(p("limit"))),
		}
	case "maxProperties":
		return Hint{
			Explanation: fmt.Sprintf("The object at %s has more than %s properties.", at, formatAny(p("limit"))),
			Suggestion:  fmt.Sprintf("Remove properties from the object at %s until it has at most %s.", at, formatAny(p("limit"))),
		}
	case "propertyNames":
		return Hint{
			Explanation: fmt.Sprintf("A property name in the object at %s violates the schema's naming rules.", at),
			Suggestion:  fmt.Sprintf("Rename the offending properties of the object at %s to satisfy the naming schema.", at),
		}
	case "dependentRequired", "dependencies":
		return Hint{
			Explanation: fmt.Sprintf("A property at %s requires other properties that are missing.", at),
			Suggestion:  fmt.Sprintf("Add the dependent properties to the object at %s.", at),
		}
	case "if", "then", "else":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s fails the schema's conditional (if/then/else) rules.", at),
			Suggestion:  fmt.Sprintf("Review the conditional branch that applies to %s and adjust the value to satisfy it.", at),
		}
	case "oneOf":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s must match exactly one of the alternative schemas.", at),
			Suggestion:  fmt.Sprintf("Adjust the value at %s so it matches exactly one alternative.", at),
		}
	case "anyOf":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s matches none of the alternative schemas.", at),
			Suggestion:  fmt.Sprintf("Adjust the value at %s so it matches at least one alternative.", at),
		}
	case "allOf":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s does not satisfy every combined schema.", at),
			Suggestion:  fmt.Sprintf("Adjust the value at %s so it satisfies all combined schemas.", at),
		}
	case "not":
		return Hint{
			Explanation: fmt.Sprintf("The value at %s matches a schema it is forbidden to match.", at),
			Suggestion:  fmt.Sprintf("Change the value at %s so it no longer matches the forbidden schema.", at),
		}
	case "multipleOf":
		return Hint{
			Explanation: fmt.Sprintf("The number at %s is not a multiple of %s.", at, formatAny(p("multipleOf"))),
			Suggestion:  fmt.Sprintf("Use a value at %s that is a multiple of %s.", at, formatAny(p("multipleOf"))),
		}
	default:
		return Hint{
			Explanation: fmt.Sprintf("The value at %s violates the schema's %q constraint.", at, keyword),
			Suggestion:  fmt.Sprintf("Review the %q constraint for %s and adjust the value accordingly.", keyword, at),
		}
	}
}

// formatAny renders a param value for prose without JSON noise.
func formatAny(v any) string {
	switch t := v.(type) {
	case nil:
		return "the schema-declared value"
	case string:
		return fmt.Sprintf("%q", t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, formatAny(e))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return strings.Join(keys, ", ")
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
