package fields

import (
	conform "github.com/reifylabs/conform"
)

// NullableField accepts nil in place of the wrapped field's value. For
// anything non-nil the wrapped field's full result passes through
// unchanged.
type NullableField struct {
	field conform.Field
}

// Nullable wraps a field so that nil is also accepted.
func Nullable(field conform.Field) *NullableField {
	if field == nil {
		panic("fields: Nullable requires a field")
	}
	return &NullableField{field: field}
}

func (f *NullableField) Validate(value any) conform.Validation {
	v := f.field.Validate(value)
	if value == nil {
		v.Errors = nil
	}
	return v
}

func (f *NullableField) Introspect() conform.Introspection {
	return conform.Introspection{
		"type":     "nullable",
		"nullable": f.field.Introspect(),
	}
}

// OptionalField is the legacy name for the nil-bypass modifier, retained
// for backward compatibility. Unlike Nullable it annotates the wrapped
// field's own introspection instead of nesting it.
type OptionalField struct {
	field conform.Field
}

// Optional wraps a field so that nil is also accepted.
func Optional(field conform.Field) *OptionalField {
	if field == nil {
		panic("fields: Optional requires a field")
	}
	return &OptionalField{field: field}
}

func (f *OptionalField) Validate(value any) conform.Validation {
	v := f.field.Validate(value)
	if value == nil {
		v.Errors = nil
	}
	return v
}

func (f *OptionalField) Introspect() conform.Introspection {
	in := f.field.Introspect()
	in["optional"] = true
	return in
}

// DeprecatedDefaultMessage is the warning attached by Deprecated when no
// message is configured.
const DeprecatedDefaultMessage = "This field has been deprecated"

// DeprecatedField delegates to the wrapped field and always appends a
// deprecation warning, regardless of validity.
type DeprecatedField struct {
	field   conform.Field
	message string
}

// Deprecated marks a field as deprecated.
func Deprecated(field conform.Field) *DeprecatedField {
	if field == nil {
		panic("fields: Deprecated requires a field")
	}
	return &DeprecatedField{field: field, message: DeprecatedDefaultMessage}
}

// Message overrides the deprecation warning text.
func (f *DeprecatedField) Message(m string) *DeprecatedField {
	f.message = m
	return f
}

func (f *DeprecatedField) Validate(value any) conform.Validation {
	v := f.field.Validate(value)
	v.AddWarning(conform.NewWarning(f.message).WithCode(conform.WarningCodeFieldDeprecated))
	return v
}

func (f *DeprecatedField) Introspect() conform.Introspection {
	in := f.field.Introspect()
	in["deprecated"] = true
	return in
}
