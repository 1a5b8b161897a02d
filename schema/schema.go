// Package schema models the draft-07 subset the repair passes understand:
// type (single or set), properties, patternProperties, items (single schema,
// no tuple positions), required, additionalProperties (bool), default.
// $ref, combinators and format live in the external check capability and are
// deliberately absent here.
package schema

import (
	"fmt"
	"regexp"
	"sort"
)

// Kind classifies a node so pass recursion can switch exhaustively instead
// of re-inspecting an untyped map at every level.
type Kind int

const (
	KindAny    Kind = iota // no shape constraint
	KindObject             // object-shaped: type "object" and/or object keywords
	KindArray              // array-shaped: type "array" and/or items
	KindScalar             // one or more scalar types
)

// Pattern pairs a compiled patternProperties regex with its sub-schema.
type Pattern struct {
	Source string
	Re     *regexp.Regexp
	Node   *Node
}

// Node is one schema node. Zero value means "unconstrained".
type Node struct {
	Kind  Kind
	Types []string // declared type set in declaration order; empty = unconstrained

	// Object facets.
	Properties        map[string]*Node
	Names             []string // sorted property names, for deterministic traversal
	Patterns          []Pattern
	Required          []string
	AdditionalAllowed bool // additionalProperties; true when absent

	// Array facet.
	Items *Node

	// Default value, deep-copied on application.
	Default    any
	HasDefault bool
}

// Parse builds a Node tree from a raw schema document (map[string]any as
// decoded from JSON). Unknown keywords are ignored; they still take effect
// through the external check capability. Returns an error for shapes the
// subset cannot represent, such as an invalid patternProperties regex.
func Parse(raw map[string]any) (*Node, error) {
	return parseNode(raw, "#")
}

func parseNode(raw map[string]any, at string) (*Node, error) {
	n := &Node{AdditionalAllowed: true}

	switch t := raw["type"].(type) {
	case string:
		n.Types = []string{t}
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok {
				n.Types = append(n.Types, s)
			}
		}
	}

	if props, ok := raw["properties"].(map[string]any); ok {
		n.Properties = make(map[string]*Node, len(props))
		for name, sub := range props {
			sm, ok := sub.(map[string]any)
			if !ok {
				continue
			}
			child, err := parseNode(sm, at+"/properties/"+name)
			if err != nil {
				return nil, err
			}
			n.Properties[name] = child
			n.Names = append(n.Names, name)
		}
		sort.Strings(n.Names)
	}

	if pats, ok := raw["patternProperties"].(map[string]any); ok {
		keys := make([]string, 0, len(pats))
		for k := range pats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, expr := range keys {
			sm, ok := pats[expr].(map[string]any)
			if !ok {
				continue
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("schema: invalid patternProperties regex %q at %s: %w", expr, at, err)
			}
			child, err := parseNode(sm, at+"/patternProperties/"+expr)
			if err != nil {
				return nil, err
			}
			n.Patterns = append(n.Patterns, Pattern{Source: expr, Re: re, Node: child})
		}
	}

	if req, ok := raw["required"].([]any); ok {
		for _, v := range req {
			if s, ok := v.(string); ok {
				n.Required = append(n.Required, s)
			}
		}
	}

	// The subset treats additionalProperties as a bool. A schema-valued
	// additionalProperties is tolerated as "allowed"; its constraints still
	// apply through the external check.
	if ap, ok := raw["additionalProperties"].(bool); ok {
		n.AdditionalAllowed = ap
	}

	if items, ok := raw["items"].(map[string]any); ok {
		child, err := parseNode(items, at+"/items")
		if err != nil {
			return nil, err
		}
		n.Items = child
	}

	if d, ok := raw["default"]; ok {
		n.Default = d
		n.HasDefault = true
	}

	n.Kind = classify(n)
	return n, nil
}

func classify(n *Node) Kind {
	has := func(t string) bool {
		for _, x := range n.Types {
			if x == t {
				return true
			}
		}
		return false
	}
	switch {
	case has("object") || n.Properties != nil || n.Patterns != nil:
		return KindObject
	case has("array") || n.Items != nil:
		return KindArray
	case len(n.Types) > 0:
		return KindScalar
	default:
		return KindAny
	}
}

// Allows reports whether t is in the declared type set. An empty set allows
// everything.
func (n *Node) Allows(t string) bool {
	if n == nil || len(n.Types) == 0 {
		return true
	}
	for _, x := range n.Types {
		if x == t {
			return true
		}
	}
	return false
}

// IsRequired reports whether name appears in required.
func (n *Node) IsRequired(name string) bool {
	if n == nil {
		return false
	}
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Child returns the sub-schema governing an object member: declared
// properties first, then the first matching patternProperties entry, else
// nil (unconstrained). This is the Navigator's object rule.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	if c, ok := n.Properties[name]; ok {
		return c
	}
	for _, p := range n.Patterns {
		if p.Re.MatchString(name) {
			return p.Node
		}
	}
	return nil
}

// Item returns the sub-schema governing every array element regardless of
// index. This is the Navigator's array rule.
func (n *Node) Item() *Node {
	if n == nil {
		return nil
	}
	return n.Items
}

// Shapeless reports whether an object node declares neither properties nor
// patternProperties. Such nodes impose no shape constraint: pruning and
// per-property defaulting skip them.
func (n *Node) Shapeless() bool {
	return n == nil || (len(n.Properties) == 0 && len(n.Patterns) == 0)
}
