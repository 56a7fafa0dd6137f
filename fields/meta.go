package fields

import (
	"fmt"
	"sort"

	conform "github.com/reifylabs/conform"
)

// AnyField is the union combinator: the first option validating with zero
// errors makes the whole union valid and its result (including warnings)
// is returned as-is. When every option fails, the union's errors are the
// concatenation of every option's errors, explaining each way the value
// could have matched and didn't.
type AnyField struct {
	options     []conform.Field
	description string
}

// Any returns a union over the given options, tried in order.
func Any(options ...conform.Field) *AnyField {
	requireChildren("Any", options)
	return &AnyField{options: options}
}

func (f *AnyField) Description(d string) *AnyField {
	f.description = d
	return f
}

func (f *AnyField) Validate(value any) conform.Validation {
	var v conform.Validation
	for _, option := range f.options {
		ov := option.Validate(value)
		if ov.IsValid() {
			return ov
		}
		v.Extend(ov, "")
	}
	return v
}

func (f *AnyField) Introspect() conform.Introspection {
	return conform.NewIntrospection("any").
		Set("options", introspectAll(f.options)).
		Set("description", f.description)
}

// AllField is the intersection combinator: every requirement runs
// unconditionally and all errors and warnings concatenate.
type AllField struct {
	requirements []conform.Field
	description  string
}

// All returns an intersection over the given requirements.
func All(requirements ...conform.Field) *AllField {
	requireChildren("All", requirements)
	return &AllField{requirements: requirements}
}

func (f *AllField) Description(d string) *AllField {
	f.description = d
	return f
}

func (f *AllField) Validate(value any) conform.Validation {
	var v conform.Validation
	for _, requirement := range f.requirements {
		v.Extend(requirement.Validate(value), "")
	}
	return v
}

func (f *AllField) Introspect() conform.Introspection {
	return conform.NewIntrospection("all").
		Set("requirements", introspectAll(f.requirements)).
		Set("description", f.description)
}

// ChainField is the sequential gate: constraints run strictly in order
// and the first one producing any error stops the chain, so later
// constraints never observe input already known to be bad.
type ChainField struct {
	constraints []conform.Field
	description string
}

// Chain returns a sequential gate over the given constraints.
func Chain(constraints ...conform.Field) *ChainField {
	requireChildren("Chain", constraints)
	return &ChainField{constraints: constraints}
}

func (f *ChainField) Description(d string) *ChainField {
	f.description = d
	return f
}

func (f *ChainField) Validate(value any) conform.Validation {
	var v conform.Validation
	for _, constraint := range f.constraints {
		cv := constraint.Validate(value)
		v.Extend(cv, "")
		if !cv.IsValid() {
			break
		}
	}
	return v
}

func (f *ChainField) Introspect() conform.Introspection {
	return conform.NewIntrospection("chain").
		Set("constraints", introspectAll(f.constraints)).
		Set("description", f.description)
}

// PolymorphDefault is the variant key used when the discriminator value
// matches no configured variant.
const PolymorphDefault = "__default__"

// PolymorphField selects one of a set of variant schemas based on a
// discriminator value reached through successive mapping lookups along a
// dotted switch path, then delegates wholesale to the matched variant.
type PolymorphField struct {
	switchField string
	contentsMap map[string]conform.Field
	description string
}

// Polymorph returns a field switching on the value found at switchField
// (a dotted key path) among the given variants.
func Polymorph(switchField string, contentsMap map[string]conform.Field) *PolymorphField {
	if switchField == "" {
		panic("fields: Polymorph requires a switch field path")
	}
	if len(contentsMap) == 0 {
		panic("fields: Polymorph requires at least one variant")
	}
	for tag, variant := range contentsMap {
		if variant == nil {
			panic(fmt.Sprintf("fields: Polymorph variant %q is nil", tag))
		}
	}
	return &PolymorphField{switchField: switchField, contentsMap: contentsMap}
}

func (f *PolymorphField) Description(d string) *PolymorphField {
	f.description = d
	return f
}

func (f *PolymorphField) Validate(value any) conform.Validation {
	variant, v := f.variant(value)
	if variant == nil {
		return v
	}
	return variant.Validate(value)
}

// variant walks the switch path and picks the variant field. A failed
// lookup along the way is a validation error, never a panic.
func (f *PolymorphField) variant(value any) (conform.Field, conform.Validation) {
	current := value
	for _, segment := range conform.SplitPointer(f.switchField) {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, singleError(fmt.Sprintf("Not a dict at switch field %q", f.switchField))
		}
		current, ok = m[segment]
		if !ok {
			var v conform.Validation
			v.AddError(conform.NewError(fmt.Sprintf("Missing switch field key: %s", f.switchField)).
				WithCode(conform.ErrorCodeMissing).
				At(f.switchField))
			return nil, v
		}
	}

	tag := fmt.Sprintf("%v", current)
	variant, ok := f.contentsMap[tag]
	if !ok {
		variant, ok = f.contentsMap[PolymorphDefault]
	}
	if !ok {
		var v conform.Validation
		v.AddError(conform.NewError(fmt.Sprintf("Invalid switch value '%v'", current)).
			WithCode(conform.ErrorCodeUnknown))
		return nil, v
	}
	return variant, conform.Validation{}
}

func (f *PolymorphField) Introspect() conform.Introspection {
	contentsMap := conform.Introspection{}
	tags := make([]string, 0, len(f.contentsMap))
	for tag := range f.contentsMap {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		contentsMap[tag] = f.contentsMap[tag].Introspect()
	}
	return conform.NewIntrospection("polymorph").
		Set("switch_field", f.switchField).
		Set("contents_map", contentsMap).
		Set("description", f.description)
}

// ValidatorField runs a caller-supplied boolean predicate against the
// value. A predicate panic is caught and reported as an error rather than
// propagated.
type ValidatorField struct {
	validator            func(any) bool
	validatorDescription string
	errorMessage         string
	description          string
}

// Validator returns a field delegating to the given predicate. The
// validator description documents the predicate in introspection; the
// error message is reported when the predicate returns false.
func Validator(validator func(any) bool, validatorDescription, errorMessage string) *ValidatorField {
	if validator == nil {
		panic("fields: Validator requires a predicate")
	}
	if validatorDescription == "" || errorMessage == "" {
		panic("fields: Validator requires a validator description and an error message")
	}
	return &ValidatorField{
		validator:            validator,
		validatorDescription: validatorDescription,
		errorMessage:         errorMessage,
	}
}

func (f *ValidatorField) Description(d string) *ValidatorField {
	f.description = d
	return f
}

func (f *ValidatorField) Validate(value any) (v conform.Validation) {
	defer func() {
		if r := recover(); r != nil {
			v = singleError(fmt.Sprintf("Validator encountered an error (invalid type?): %v", r))
		}
	}()
	if !f.validator(value) {
		return singleError(f.errorMessage)
	}
	return conform.Validation{}
}

func (f *ValidatorField) Introspect() conform.Introspection {
	return conform.NewIntrospection("boolean_validator").
		Set("validator", f.validatorDescription).
		Set("description", f.description)
}

func requireChildren(kind string, children []conform.Field) {
	if len(children) == 0 {
		panic(fmt.Sprintf("fields: %s requires at least one field", kind))
	}
	for i, c := range children {
		if c == nil {
			panic(fmt.Sprintf("fields: %s field %d is nil", kind, i))
		}
	}
}

func introspectAll(children []conform.Field) []any {
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = c.Introspect()
	}
	return out
}
