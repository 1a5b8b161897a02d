package jsonmend

import (
	"context"
	"strings"

	"github.com/jsonmend/jsonmend/internal/mend"
	"github.com/jsonmend/jsonmend/internal/textfix"
	"github.com/jsonmend/jsonmend/schema"
)

// Repair applies the three schema-aware passes — prune, then coerce, then
// default — to a private deep copy of value, recording every mutation in
// the change ledger. The repaired value is re-validated informationally:
// residual invalidity is reported as data in the result, never as an error.
// Repair is advisory, not a validity guarantee.
func (e *Engine) Repair(ctx context.Context, schemaDoc any, value any) (res *RepairResult, err error) {
	defer guard(&err)
	if cerr := contextErr(ctx); cerr != nil {
		return nil, cerr
	}
	res, ierr := e.repair(schemaDoc, value, nil)
	if ierr != nil {
		return nil, ierr
	}
	return res, nil
}

// RepairText is the raw-text entry point: the recovery pass runs first and
// its diagnostics are carried in ParseErrors. It fails with PARSE_ERROR when
// no parseable value can be produced.
func (e *Engine) RepairText(ctx context.Context, schemaDoc any, text []byte) (res *RepairResult, err error) {
	defer guard(&err)
	if cerr := contextErr(ctx); cerr != nil {
		return nil, cerr
	}
	// Reject a bad schema before reporting on the text.
	if _, ierr := e.compileSchema(schemaDoc); ierr != nil {
		return nil, ierr
	}
	rec := textfix.Recover(string(text))
	if !rec.Parsed {
		return nil, parseError("input text is not recoverable JSON", strings.Join(rec.Diagnostics, "; "))
	}
	res, ierr := e.repair(schemaDoc, rec.Value, rec.Diagnostics)
	if ierr != nil {
		return nil, ierr
	}
	return res, nil
}

func (e *Engine) repair(schemaDoc any, value any, parseDiags []string) (*RepairResult, *Error) {
	m, ierr := schemaObject(schemaDoc)
	if ierr != nil {
		return nil, ierr
	}
	check, err := e.compiler.Compile(m)
	if err != nil {
		return nil, invalidInputCause(err, "schema does not compile")
	}
	node, perr := schema.Parse(m)
	if perr != nil {
		return nil, invalidInputCause(perr, "schema is outside the supported subset")
	}

	work := mend.DeepCopy(value)
	var ledger []mend.Change

	// Fixed intra-call order: pruning precedes coercion so values about to
	// be deleted are never converted; coercion precedes defaulting so
	// defaults fill only genuinely absent positions.
	work, cs := mend.Prune(work, node, mend.Root)
	ledger = append(ledger, cs...)
	work, cs = mend.Coerce(work, node, mend.Root)
	ledger = append(ledger, cs...)
	work, cs = mend.ApplyDefaults(work, node, mend.Root)
	ledger = append(ledger, cs...)

	errs := check(work)
	if errs == nil {
		errs = []ValidationError{}
	}
	return &RepairResult{
		Repaired:    work,
		Changes:     toChangeRecords(ledger),
		ParseErrors: parseDiags,
		Valid:       len(errs) == 0,
		Errors:      errs,
	}, nil
}

func toChangeRecords(ledger []mend.Change) []ChangeRecord {
	out := make([]ChangeRecord, 0, len(ledger))
	for _, c := range ledger {
		out = append(out, ChangeRecord{
			Path:   c.Path,
			Action: ChangeAction(c.Action),
			From:   c.From,
			To:     c.To,
			Reason: c.Reason,
		})
	}
	return out
}

// Repair repairs a parsed value using the default engine.
func Repair(ctx context.Context, schemaDoc any, value any) (*RepairResult, error) {
	return defaultEngine.Repair(ctx, schemaDoc, value)
}

// RepairText repairs raw JSON text using the default engine.
func RepairText(ctx context.Context, schemaDoc any, text []byte) (*RepairResult, error) {
	return defaultEngine.RepairText(ctx, schemaDoc, text)
}
