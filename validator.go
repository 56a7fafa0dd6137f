package conform

import (
	"fmt"
	"strings"
)

// ValidationError is the exception-style wrapper around collected errors,
// for callers that prefer an error contract over inspecting a Validation.
// The core never returns it from the validate path; raising is a decision
// made by the calling collaborator.
type ValidationError struct {
	Errors []Error
}

// Error enumerates every collected error with its pointer and message, one
// per line, in collection order.
func (e *ValidationError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "invalid value (%d error(s)):", len(e.Errors))
	for _, err := range e.Errors {
		if err.Pointer != "" {
			fmt.Fprintf(b, "\n  - %s: %s", err.Pointer, err.Message)
		} else {
			fmt.Fprintf(b, "\n  - %s", err.Message)
		}
	}
	return b.String()
}

// Check validates the value against the field and returns nil when valid,
// or a *ValidationError carrying every collected error.
func Check(f Field, value any) error {
	v := f.Validate(value)
	if v.IsValid() {
		return nil
	}
	return &ValidationError{Errors: v.Errors}
}

// CallValidator wraps a callable behind explicit argument and return
// schemas. Schemas are always supplied by the caller; nothing is inferred
// from the function's own signature.
type CallValidator struct {
	args    Field
	returns Field
}

// NewCallValidator builds a CallValidator. Both schemas are required.
func NewCallValidator(args, returns Field) *CallValidator {
	if args == nil || returns == nil {
		panic("conform: NewCallValidator requires both an args schema and a returns schema")
	}
	return &CallValidator{args: args, returns: returns}
}

// Call validates kwargs against the args schema, invokes fn, and validates
// the returned value against the returns schema. Validation failures on
// either side surface as a *ValidationError; errors returned by fn itself
// pass through untouched.
func (cv *CallValidator) Call(fn func(kwargs map[string]any) (any, error), kwargs map[string]any) (any, error) {
	if err := Check(cv.args, kwargs); err != nil {
		return nil, err
	}
	out, err := fn(kwargs)
	if err != nil {
		return nil, err
	}
	if err := Check(cv.returns, out); err != nil {
		return nil, err
	}
	return out, nil
}
