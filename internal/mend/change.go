// Package mend implements the three schema-aware repair passes. Each pass is
// a pure function (value, schema, path) -> (newValue, changes); the caller
// composes them in the fixed prune -> coerce -> default order and owns the
// combined ledger.
package mend

// Action enumerates ledger entry kinds.
type Action string

const (
	Removed   Action = "removed"
	Added     Action = "added"
	Coerced   Action = "coerced"
	Defaulted Action = "defaulted"
)

// Change is one ledger entry. Path is an RFC-6901 pointer into the working
// value, valid at the moment the action was applied.
type Change struct {
	Path   string
	Action Action
	From   any
	To     any
	Reason string
}
