// Package textfix is the best-effort recovery pass for malformed JSON text.
// It attempts a strict parse, applies one fixed sequence of textual rewrites,
// and re-parses exactly once. It never guesses missing structure and never
// reinterprets data beyond the fixed rewrites.
package textfix

import (
	"fmt"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

// Result carries the recovered value (when Parsed) and the ordered
// diagnostics describing what the pass attempted.
type Result struct {
	Value       any
	Parsed      bool
	Diagnostics []string
}

var (
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
	reSingleQuoted  = regexp.MustCompile(`'([^'\\]*)'`)
	reBareKey       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	reLineComment   = regexp.MustCompile(`//[^\n]*`)
	reBlockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reBareToken     = regexp.MustCompile(`\b(undefined|NaN)\b`)
)

// Recover parses text strictly first. On failure it applies the rewrite
// sequence once — strip trailing commas, single to double quotes, quote bare
// identifier keys, strip comments, neutralize undefined/NaN — then re-parses
// exactly once. Both outcomes are recorded as diagnostics.
func Recover(text string) Result {
	var v any
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		return Result{Value: v, Parsed: true, Diagnostics: []string{"strict parse succeeded"}}
	}

	res := Result{Diagnostics: []string{fmt.Sprintf("strict parse failed: %v", err)}}
	fixed := rewrite(text)
	var rv any
	if rerr := json.Unmarshal([]byte(fixed), &rv); rerr != nil {
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("re-parse after rewrites failed: %v", rerr))
		return res
	}
	res.Value = rv
	res.Parsed = true
	res.Diagnostics = append(res.Diagnostics, "applied syntax rewrites; repaired successfully")
	return res
}

// rewrite applies the fixed rewrites in order, each exactly once. The
// rewrites are heuristic by design: they may touch string contents in
// pathological inputs, which is why the result is re-parsed and reported
// rather than trusted.
func rewrite(text string) string {
	s := text
	s = reTrailingComma.ReplaceAllString(s, "$1")
	s = reSingleQuoted.ReplaceAllString(s, `"$1"`)
	s = reBareKey.ReplaceAllString(s, `$1"$2":`)
	s = reLineComment.ReplaceAllString(s, "")
	s = reBlockComment.ReplaceAllString(s, "")
	s = reBareToken.ReplaceAllString(s, "null")
	return strings.TrimSpace(s)
}
