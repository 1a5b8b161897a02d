package jsonmend

// ValidationError is a single schema violation, normalized from the external
// check capability's raw output. Immutable after creation.
type ValidationError struct {
	Path       string         `json:"path"`             // JSON Pointer into the instance; "/" is root
	Keyword    string         `json:"keyword"`          // draft-07 keyword that failed (e.g. "minimum")
	Message    string         `json:"message"`
	Params     map[string]any `json:"params,omitempty"` // structured detail (e.g. {"limit":0})
	SchemaPath string         `json:"schemaPath"`       // keyword location inside the schema
}

// ValidationResult is the outcome of a validate call. Valid=false with
// populated Errors is a normal successful result, not a failure.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// ChangeAction enumerates the mutations the repair passes may apply.
type ChangeAction string

const (
	ChangeRemoved   ChangeAction = "removed"
	ChangeAdded     ChangeAction = "added"
	ChangeCoerced   ChangeAction = "coerced"
	ChangeDefaulted ChangeAction = "defaulted"
)

// ChangeRecord is one entry in the change ledger of a repair call. The ledger
// is append-only and owned by a single call; entries appear in pass order
// (prune, then coerce, then default).
type ChangeRecord struct {
	Path   string       `json:"path"`
	Action ChangeAction `json:"action"`
	From   any          `json:"from,omitempty"`
	To     any          `json:"to,omitempty"`
	Reason string       `json:"reason"`
}

// RepairResult bundles the repaired working copy, its change ledger, the
// text-recovery diagnostics (when the input was raw text), and the
// informational final validation of the repaired value. Repair is advisory:
// Valid may be false and that is still a successful repair.
type RepairResult struct {
	Repaired    any               `json:"repaired"`
	Changes     []ChangeRecord    `json:"changes"`
	ParseErrors []string          `json:"parseErrors,omitempty"`
	Valid       bool              `json:"valid"`
	Errors      []ValidationError `json:"errors,omitempty"`
}

// Explanation pairs a validation error with translated guidance.
type Explanation struct {
	Path        string          `json:"path"`
	Error       ValidationError `json:"error"`
	Explanation string          `json:"explanation"`
	Suggestion  string          `json:"suggestion"`
}

// ExplainResult is the outcome of an explain call.
type ExplainResult struct {
	Explanations []Explanation `json:"explanations"`
}
