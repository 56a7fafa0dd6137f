package fields_test

import (
	"reflect"
	"testing"

	conform "github.com/reifylabs/conform"
	"github.com/reifylabs/conform/fields"
)

func TestList(t *testing.T) {
	f := fields.List(fields.Integer())
	assertValid(t, f, []any{1, 2, 3})
	assertValid(t, f, []int{})
	assertOneError(t, f, map[string]any{}, "Not a list")
	assertOneError(t, f, "abc", "Not a list")
	assertOneError(t, f, nil, "Not a list")
	assertOneError(t, f, [2]int{1, 2}, "Not a list")
}

func TestList_ElementPointers(t *testing.T) {
	f := fields.List(fields.Integer())
	v := f.Validate([]any{1, "two", 3, "four"})
	if len(v.Errors) != 2 {
		t.Fatalf("errors = %+v, want two", v.Errors)
	}
	if v.Errors[0].Pointer != "1" || v.Errors[1].Pointer != "3" {
		t.Fatalf("pointers = %q, %q, want 1, 3", v.Errors[0].Pointer, v.Errors[1].Pointer)
	}
}

func TestList_LengthAndElementErrorsCoOccur(t *testing.T) {
	f := fields.List(fields.Integer().Gt(0)).MaxLength(2)
	v := f.Validate([]any{1, -1, 2})
	if len(v.Errors) != 2 {
		t.Fatalf("errors = %+v, want two", v.Errors)
	}
	if v.Errors[0].Message != "List is longer than 2" || v.Errors[0].Pointer != "" {
		t.Fatalf("length error = %+v", v.Errors[0])
	}
	if v.Errors[1].Message != "Value not > 0" || v.Errors[1].Pointer != "1" {
		t.Fatalf("element error = %+v", v.Errors[1])
	}
}

func TestList_MinLength(t *testing.T) {
	assertOneError(t, fields.List(fields.Anything()).MinLength(2), []any{1}, "List is shorter than 2")
}

func TestSequence_AcceptsArrays(t *testing.T) {
	f := fields.Sequence(fields.Integer())
	assertValid(t, f, [3]int{1, 2, 3})
	assertValid(t, f, []int{1, 2, 3})
	assertOneError(t, f, "abc", "Not a sequence")
}

func TestSet(t *testing.T) {
	f := fields.Set(fields.String())
	assertValid(t, f, map[string]struct{}{"a": {}, "b": {}})
	assertValid(t, f, map[string]bool{"a": true})
	assertOneError(t, f, []string{"a"}, "Not a set")
	assertOneError(t, f, nil, "Not a set")
}

func TestSet_ElementErrorsSortedByRenderedValue(t *testing.T) {
	f := fields.Set(fields.String())
	v := f.Validate(map[any]struct{}{3: {}, 1: {}, "ok": {}})
	if len(v.Errors) != 2 {
		t.Fatalf("errors = %+v, want two", v.Errors)
	}
	if v.Errors[0].Pointer != "[1]" || v.Errors[1].Pointer != "[3]" {
		t.Fatalf("pointers = %q, %q, want [1], [3]", v.Errors[0].Pointer, v.Errors[1].Pointer)
	}
	if v.Errors[0].Message != "Not a unicode string" {
		t.Fatalf("message = %q", v.Errors[0].Message)
	}
}

func TestSet_Lengths(t *testing.T) {
	f := fields.Set(fields.Anything()).MinLength(1).MaxLength(2)
	assertValid(t, f, map[string]struct{}{"a": {}})
	assertOneError(t, f, map[string]struct{}{}, "List is shorter than 1")
	assertOneError(t, f, map[string]struct{}{"a": {}, "b": {}, "c": {}}, "List is longer than 2")
}

func TestTuple(t *testing.T) {
	f := fields.Tuple(fields.Integer(), fields.String(), fields.Boolean())
	assertValid(t, f, []any{1, "a", true})
	assertOneError(t, f, map[string]any{}, "Not a tuple")
	assertOneError(t, f, nil, "Not a tuple")
}

func TestTuple_ArityMismatchIsSingleError(t *testing.T) {
	f := fields.Tuple(fields.Integer(), fields.String())
	v := f.Validate([]any{"wrong"})
	if len(v.Errors) != 1 {
		t.Fatalf("errors = %+v, want exactly one", v.Errors)
	}
	if v.Errors[0].Message != "Number of elements 1 does not match expected 2" {
		t.Fatalf("message = %q", v.Errors[0].Message)
	}
}

func TestTuple_PositionalPointers(t *testing.T) {
	f := fields.Tuple(fields.Integer(), fields.String())
	v := f.Validate([]any{"a", 1})
	if len(v.Errors) != 2 {
		t.Fatalf("errors = %+v, want two", v.Errors)
	}
	if v.Errors[0].Pointer != "0" || v.Errors[1].Pointer != "1" {
		t.Fatalf("pointers = %q, %q", v.Errors[0].Pointer, v.Errors[1].Pointer)
	}
}

func TestSchemalessDictionary(t *testing.T) {
	f := fields.SchemalessDictionary()
	assertValid(t, f, map[string]any{"a": 1, "b": []int{2}})
	assertValid(t, f, map[int]string{1: "x"})
	assertOneError(t, f, []any{}, "Not a dict")
	assertOneError(t, f, nil, "Not a dict")
}

func TestSchemalessDictionary_Typed(t *testing.T) {
	f := fields.SchemalessDictionary().
		KeyType(fields.String()).
		ValueType(fields.Integer())
	assertValid(t, f, map[string]any{"a": 1})

	v := f.Validate(map[any]any{"a": "one", 2: 2})
	if len(v.Errors) != 2 {
		t.Fatalf("errors = %+v, want two", v.Errors)
	}
	// Entries report in sorted rendered-key order.
	if v.Errors[0].Pointer != "2" || v.Errors[0].Message != "Not a unicode string" {
		t.Fatalf("first error = %+v", v.Errors[0])
	}
	if v.Errors[1].Pointer != "a" || v.Errors[1].Message != "Not an integer" {
		t.Fatalf("second error = %+v", v.Errors[1])
	}
}

func TestSchemalessDictionary_Lengths(t *testing.T) {
	f := fields.SchemalessDictionary().MinLength(1).MaxLength(2)
	assertOneError(t, f, map[string]any{}, "Dict contains fewer than 1 value(s)")
	assertOneError(t, f,
		map[string]any{"a": 1, "b": 2, "c": 3},
		"Dict contains more than 2 value(s)")
}

func TestCollectionIntrospection(t *testing.T) {
	cases := []struct {
		name  string
		field conform.Field
		want  conform.Introspection
	}{
		{"list", fields.List(fields.Integer()).MaxLength(5), conform.Introspection{
			"type":       "list",
			"contents":   conform.Introspection{"type": "integer"},
			"max_length": 5,
		}},
		{"sequence", fields.Sequence(fields.String()), conform.Introspection{
			"type":     "sequence",
			"contents": conform.Introspection{"type": "unicode"},
		}},
		{"set", fields.Set(fields.String()), conform.Introspection{
			"type":     "set",
			"contents": conform.Introspection{"type": "unicode"},
		}},
		{"tuple", fields.Tuple(fields.Integer(), fields.String()), conform.Introspection{
			"type": "tuple",
			"contents": []any{
				conform.Introspection{"type": "integer"},
				conform.Introspection{"type": "unicode"},
			},
		}},
		{"schemaless defaults omitted", fields.SchemalessDictionary(), conform.Introspection{
			"type": "schemaless_dictionary",
		}},
		{"schemaless typed", fields.SchemalessDictionary().KeyType(fields.String()).ValueType(fields.Integer()), conform.Introspection{
			"type":       "schemaless_dictionary",
			"key_type":   conform.Introspection{"type": "unicode"},
			"value_type": conform.Introspection{"type": "integer"},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.field.Introspect(); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Introspect() = %#v, want %#v", got, c.want)
			}
		})
	}
}
