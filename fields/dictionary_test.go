package fields_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	conform "github.com/reifylabs/conform"
	"github.com/reifylabs/conform/fields"
)

func userSchema() *fields.DictionaryField {
	return fields.Dictionary().
		Key("name", fields.String()).
		Key("age", fields.Integer().Gte(0)).
		OptionalKeys("age")
}

func TestDictionary_Valid(t *testing.T) {
	f := userSchema()
	assertValid(t, f, map[string]any{"name": "ada", "age": 36})
	assertValid(t, f, map[string]any{"name": "ada"})
}

func TestDictionary_NotADict(t *testing.T) {
	f := userSchema()
	assertOneError(t, f, []any{}, "Not a dict")
	assertOneError(t, f, "x", "Not a dict")
	assertOneError(t, f, nil, "Not a dict")
}

func TestDictionary_MissingKeys(t *testing.T) {
	f := fields.Dictionary().
		Key("a", fields.Integer()).
		Key("b", fields.String())

	v := f.Validate(map[string]any{})
	require.Len(t, v.Errors, 2)
	require.Equal(t, "Missing key: a", v.Errors[0].Message)
	require.Equal(t, conform.ErrorCodeMissing, v.Errors[0].Code)
	require.Equal(t, "a", v.Errors[0].Pointer)
	require.Equal(t, "Missing key: b", v.Errors[1].Message)
	require.Equal(t, "b", v.Errors[1].Pointer)
}

func TestDictionary_ExtraKeys(t *testing.T) {
	f := userSchema()
	v := f.Validate(map[string]any{"name": "ada", "zz": 1, "aa": 2})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Extra keys present: aa, zz", v.Errors[0].Message)
	require.Equal(t, conform.ErrorCodeUnknown, v.Errors[0].Code)
}

func TestDictionary_AllowExtraKeys(t *testing.T) {
	f := userSchema().AllowExtraKeys()
	assertValid(t, f, map[string]any{"name": "ada", "whatever": []int{1}})
}

func TestDictionary_ExtraKeysConstrained(t *testing.T) {
	f := fields.Dictionary().
		Key("name", fields.String()).
		ExtraKeys(fields.String(), fields.Integer())

	assertValid(t, f, map[string]any{"name": "ada", "extra": 1})

	v := f.Validate(map[string]any{"name": "ada", "extra": "nope"})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Not an integer", v.Errors[0].Message)
	require.Equal(t, "extra", v.Errors[0].Pointer)
}

func TestDictionary_NestedPointers(t *testing.T) {
	f := fields.Dictionary().
		Key("a", fields.List(fields.Integer().Gt(0)))

	v := f.Validate(map[string]any{"a": []any{1, -1}})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "a.1", v.Errors[0].Pointer)
	require.Equal(t, "Value not > 0", v.Errors[0].Message)
}

func TestDictionary_VariableKeyPatterns(t *testing.T) {
	f := fields.Dictionary().
		Key("version", fields.Integer()).
		KeyField(fields.String(), fields.Integer())

	assertValid(t, f, map[string]any{"version": 1, "anything": 2})

	v := f.Validate(map[string]any{"version": 1, "other": "nope"})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Not an integer", v.Errors[0].Message)
	require.Equal(t, "other", v.Errors[0].Pointer)

	// Keys that match no pattern are still extra keys.
	v = f.Validate(map[any]any{"version": 1, 5: 2})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Extra keys present: 5", v.Errors[0].Message)
}

func TestDictionary_KeyFieldFoldsConstantToNamedKey(t *testing.T) {
	f := fields.Dictionary().
		KeyField(fields.Constant("only"), fields.Integer())

	v := f.Validate(map[string]any{})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Missing key: only", v.Errors[0].Message)
	require.Equal(t, conform.ErrorCodeMissing, v.Errors[0].Code)
}

func TestDictionary_KeyOverridesInPlace(t *testing.T) {
	f := fields.Dictionary().
		Key("a", fields.Integer()).
		Key("b", fields.Integer()).
		Key("a", fields.String())

	assertValid(t, f, map[string]any{"a": "now a string", "b": 1})
	require.Equal(t, []string{"a", "b"}, f.Introspect()["display_order"])
}

func TestDictionary_Extend(t *testing.T) {
	base := fields.Dictionary().
		Key("name", fields.String()).
		Key("age", fields.Integer()).
		OptionalKeys("age")

	derived := base.Extend().
		Key("age", fields.Float()).
		Key("email", fields.String()).
		ReplaceOptionalKeys("email")

	// The base is untouched.
	assertValid(t, base, map[string]any{"name": "ada", "age": 36})
	v := base.Validate(map[string]any{"name": "ada", "email": "x"})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Extra keys present: email", v.Errors[0].Message)

	// The derived schema has the override, the new key and new optionals.
	assertValid(t, derived, map[string]any{"name": "ada", "age": 36.5})
	v = derived.Validate(map[string]any{"name": "ada"})
	require.Len(t, v.Errors, 1)
	require.Equal(t, "Missing key: age", v.Errors[0].Message)
}

func TestDictionary_Introspection(t *testing.T) {
	f := fields.Dictionary().
		Key("name", fields.String()).
		Key("age", fields.Integer()).
		OptionalKeys("age").
		Description("a user")

	require.Equal(t, conform.Introspection{
		"type": "dictionary",
		"contents": conform.Introspection{
			"name": conform.Introspection{"type": "unicode"},
			"age":  conform.Introspection{"type": "integer"},
		},
		"optional_keys":    []string{"age"},
		"display_order":    []string{"name", "age"},
		"description":      "a user",
		"allow_extra_keys": false,
	}, f.Introspect())
}

func TestDictionary_IntrospectionExtras(t *testing.T) {
	f := fields.Dictionary().
		KeyField(fields.String(), fields.Integer()).
		ExtraKeys(fields.Hashable(), fields.Anything())

	in := f.Introspect()
	require.Equal(t, true, in["allow_extra_keys"])
	require.Equal(t, []any{conform.Introspection{
		"key_type":   conform.Introspection{"type": "unicode"},
		"value_type": conform.Introspection{"type": "integer"},
	}}, in["key_patterns"])
	require.Equal(t, conform.Introspection{
		"key_type":   conform.Introspection{"type": "hashable"},
		"value_type": conform.Introspection{"type": "anything"},
	}, in["extra_keys"])
}

func TestDictionaryOf_SortedDeclaration(t *testing.T) {
	f := fields.DictionaryOf(map[string]conform.Field{
		"b": fields.Integer(),
		"a": fields.String(),
	})
	require.Equal(t, []string{"a", "b"}, f.Introspect()["display_order"])
}
