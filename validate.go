package jsonmend

import "context"

// Validate checks an instance against a draft-07 schema document. It fails
// with INVALID_INPUT when schema is not object-shaped or does not compile;
// for a valid schema it never fails regardless of instance shape. A
// Valid=false result with populated Errors is a normal successful return.
func (e *Engine) Validate(ctx context.Context, schema any, instance any) (res *ValidationResult, err error) {
	defer guard(&err)
	if cerr := contextErr(ctx); cerr != nil {
		return nil, cerr
	}
	check, ierr := e.compileSchema(schema)
	if ierr != nil {
		return nil, ierr
	}
	errs := check(instance)
	if errs == nil {
		errs = []ValidationError{}
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}, nil
}

func (e *Engine) compileSchema(schema any) (CheckFunc, *Error) {
	m, ierr := schemaObject(schema)
	if ierr != nil {
		return nil, ierr
	}
	check, err := e.compiler.Compile(m)
	if err != nil {
		return nil, invalidInputCause(err, "schema does not compile")
	}
	return check, nil
}

// Validate checks an instance using the default engine.
func Validate(ctx context.Context, schema any, instance any) (*ValidationResult, error) {
	return defaultEngine.Validate(ctx, schema, instance)
}
