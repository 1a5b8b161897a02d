package jsonmend

import "github.com/jsonmend/jsonmend/diag"

// Explain translates validation errors into per-error explanations and
// suggestions via the diagnostic table. It is pure: no schema or instance
// access, only the structured errors. Boundary adapters decoding untyped
// input are responsible for rejecting non-sequence payloads with
// INVALID_INPUT before reaching this typed API.
func (e *Engine) Explain(errs []ValidationError) (res *ExplainResult, err error) {
	defer guard(&err)
	out := make([]Explanation, 0, len(errs))
	for _, ve := range errs {
		hint := diag.T(ve.Keyword, ve.Params, ve.Path)
		out = append(out, Explanation{
			Path:        ve.Path,
			Error:       ve,
			Explanation: hint.Explanation,
			Suggestion:  hint.Suggestion,
		})
	}
	return &ExplainResult{Explanations: out}, nil
}

// Explain translates validation errors using the default engine.
func Explain(errs []ValidationError) (*ExplainResult, error) {
	return defaultEngine.Explain(errs)
}
