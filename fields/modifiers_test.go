package fields_test

import (
	"reflect"
	"testing"

	conform "github.com/reifylabs/conform"
	"github.com/reifylabs/conform/fields"
)

func TestNullable(t *testing.T) {
	f := fields.Nullable(fields.Integer().Gt(0))
	assertValid(t, f, nil)
	assertValid(t, f, 5)
	assertOneError(t, f, -1, "Value not > 0")
	assertOneError(t, f, "x", "Not an integer")
}

func TestNullable_NonNilEqualsWrapped(t *testing.T) {
	wrapped := fields.Integer().Gt(0)
	f := fields.Nullable(wrapped)
	for _, value := range []any{5, -1, "x", []int{1}} {
		got := f.Validate(value)
		want := wrapped.Validate(value)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Validate(%v) = %+v, want wrapped result %+v", value, got, want)
		}
	}
}

func TestNullable_NilKeepsWarnings(t *testing.T) {
	f := fields.Nullable(fields.Deprecated(fields.Integer()))
	v := f.Validate(nil)
	if !v.IsValid() {
		t.Fatalf("errors = %+v, want none for nil", v.Errors)
	}
	if len(v.Warnings) != 1 {
		t.Fatalf("warnings = %+v, want the wrapped field's warning", v.Warnings)
	}
}

func TestOptional(t *testing.T) {
	f := fields.Optional(fields.String())
	assertValid(t, f, nil)
	assertValid(t, f, "x")
	assertOneError(t, f, 3, "Not a unicode string")
}

func TestDeprecated(t *testing.T) {
	f := fields.Deprecated(fields.Integer())

	v := f.Validate(5)
	if !v.IsValid() {
		t.Fatalf("errors = %+v, want none", v.Errors)
	}
	if len(v.Warnings) != 1 {
		t.Fatalf("warnings = %+v, want one", v.Warnings)
	}
	w := v.Warnings[0]
	if w.Message != fields.DeprecatedDefaultMessage {
		t.Fatalf("message = %q", w.Message)
	}
	if w.Code != conform.WarningCodeFieldDeprecated {
		t.Fatalf("code = %q, want FIELD_DEPRECATED", w.Code)
	}

	// The warning appears even when validation fails.
	v = f.Validate("x")
	if len(v.Errors) != 1 || len(v.Warnings) != 1 {
		t.Fatalf("errors = %+v, warnings = %+v", v.Errors, v.Warnings)
	}
}

func TestDeprecated_CustomMessage(t *testing.T) {
	f := fields.Deprecated(fields.Integer()).Message("Use 'count' instead")
	v := f.Validate(1)
	if v.Warnings[0].Message != "Use 'count' instead" {
		t.Fatalf("message = %q", v.Warnings[0].Message)
	}
}

func TestModifierIntrospection(t *testing.T) {
	got := fields.Nullable(fields.Integer()).Introspect()
	want := conform.Introspection{
		"type":     "nullable",
		"nullable": conform.Introspection{"type": "integer"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Nullable Introspect() = %#v, want %#v", got, want)
	}

	got = fields.Optional(fields.String()).Introspect()
	want = conform.Introspection{"type": "unicode", "optional": true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Optional Introspect() = %#v, want %#v", got, want)
	}

	got = fields.Deprecated(fields.String()).Introspect()
	want = conform.Introspection{"type": "unicode", "deprecated": true}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Deprecated Introspect() = %#v, want %#v", got, want)
	}
}
