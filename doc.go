// Package jsonmend provides:
//
// - Validation of JSON values against a draft-07 JSON Schema subset, with a
//   stable per-error model (JSON Pointer path, keyword, structured params)
// - Best-effort conservative repair: a text recovery pass for malformed JSON
//   plus three ordered schema-aware passes (prune -> coerce -> default),
//   every mutation recorded in an auditable change ledger
// - Human-readable explanations and suggestions for validation errors
//
// Design policy:
// - Keep only public APIs in the root package; put the repair passes and the
//   text recovery machinery under internal/.
// - Place the schema model under schema/, diagnostics under diag/, and the
//   CLI under cmd/jsonmend.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	res, err := jsonmend.Validate(ctx, schemaDoc, value)
//	rep, err := jsonmend.RepairText(ctx, schemaDoc, raw)
//	exp, err := jsonmend.Explain(res.Errors)
package jsonmend
