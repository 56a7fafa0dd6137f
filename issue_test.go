package conform_test

import (
	"testing"

	conform "github.com/reifylabs/conform"
)

func TestValidation_IsValid(t *testing.T) {
	var v conform.Validation
	if !v.IsValid() {
		t.Fatalf("empty validation should be valid")
	}

	v.AddWarning(conform.NewWarning("heads up"))
	if !v.IsValid() {
		t.Fatalf("warnings must not affect validity")
	}

	v.AddError(conform.NewError("bad"))
	if v.IsValid() {
		t.Fatalf("validation with errors should be invalid")
	}
}

func TestValidation_IsValidOnReturnValue(t *testing.T) {
	// IsValid must be callable directly on a function's return value,
	// not only on an addressable variable.
	fresh := func() conform.Validation { return conform.Validation{} }
	if !fresh().IsValid() {
		t.Fatalf("empty validation should be valid")
	}
	failed := func() conform.Validation {
		var v conform.Validation
		v.AddError(conform.NewError("bad"))
		return v
	}
	if failed().IsValid() {
		t.Fatalf("validation with errors should be invalid")
	}
}

func TestNewError_DefaultCode(t *testing.T) {
	e := conform.NewError("bad")
	if e.Code != conform.ErrorCodeInvalid {
		t.Fatalf("default code = %q, want INVALID", e.Code)
	}
	if e.Pointer != "" {
		t.Fatalf("default pointer = %q, want empty", e.Pointer)
	}

	e = e.WithCode(conform.ErrorCodeMissing).At("a")
	if e.Code != conform.ErrorCodeMissing || e.Pointer != "a" {
		t.Fatalf("unexpected error after chaining: %+v", e)
	}
}

func TestNewWarning_DefaultCode(t *testing.T) {
	w := conform.NewWarning("heads up")
	if w.Code != conform.WarningCodeWarning {
		t.Fatalf("default code = %q, want WARNING", w.Code)
	}
}

func TestValidation_Extend_PrefixesPointers(t *testing.T) {
	var child conform.Validation
	child.AddError(conform.NewError("bad").At("x"))
	child.AddError(conform.NewError("absent"))
	child.AddWarning(conform.NewWarning("old").WithCode(conform.WarningCodeFieldDeprecated))

	var parent conform.Validation
	parent.Extend(child, "p")

	if got := parent.Errors[0].Pointer; got != "p.x" {
		t.Fatalf("pointer = %q, want p.x", got)
	}
	if got := parent.Errors[1].Pointer; got != "p" {
		t.Fatalf("pointer for pointerless child error = %q, want p", got)
	}
	if got := parent.Warnings[0].Pointer; got != "p" {
		t.Fatalf("warning pointer = %q, want p", got)
	}
}

func TestValidation_Extend_Associative(t *testing.T) {
	var inner conform.Validation
	inner.AddError(conform.NewError("bad").At("x"))

	var middle conform.Validation
	middle.Extend(inner, "p")
	var outer conform.Validation
	outer.Extend(middle, "q")

	if got := outer.Errors[0].Pointer; got != "q.p.x" {
		t.Fatalf("pointer = %q, want q.p.x", got)
	}
}

func TestValidation_Extend_EmptyPointer(t *testing.T) {
	var child conform.Validation
	child.AddError(conform.NewError("bad").At("x"))

	var parent conform.Validation
	parent.Extend(child, "")
	if got := parent.Errors[0].Pointer; got != "x" {
		t.Fatalf("pointer = %q, want x unchanged", got)
	}
}

func TestValidation_Extend_DoesNotMutateChild(t *testing.T) {
	var child conform.Validation
	child.AddError(conform.NewError("bad").At("x"))

	var parent conform.Validation
	parent.Extend(child, "p")
	if got := child.Errors[0].Pointer; got != "x" {
		t.Fatalf("child pointer mutated to %q", got)
	}
}
