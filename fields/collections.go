package fields

import (
	"fmt"
	"reflect"
	"sort"

	conform "github.com/reifylabs/conform"
)

// ListField validates a slice whose elements all satisfy one content
// field. A wrong container type short-circuits; a length violation does
// not, so length and element errors can co-occur.
type ListField struct {
	contents             conform.Field
	minLength, maxLength *int
	description          string

	typeError  string
	introsType string
	arrayOK    bool
}

// List returns a field accepting slices of elements matching contents.
func List(contents conform.Field) *ListField {
	if contents == nil {
		panic("fields: List requires a contents field")
	}
	return &ListField{contents: contents, typeError: "Not a list", introsType: "list"}
}

// Sequence returns a field like List that also accepts arrays.
func Sequence(contents conform.Field) *ListField {
	f := List(contents)
	f.typeError = "Not a sequence"
	f.introsType = "sequence"
	f.arrayOK = true
	return f
}

func (f *ListField) MinLength(n int) *ListField {
	f.minLength = &n
	checkLengthRange(f.minLength, f.maxLength, "List")
	return f
}

func (f *ListField) MaxLength(n int) *ListField {
	f.maxLength = &n
	checkLengthRange(f.minLength, f.maxLength, "List")
	return f
}

func (f *ListField) Description(d string) *ListField {
	f.description = d
	return f
}

func (f *ListField) Validate(value any) conform.Validation {
	rv, ok := sequenceValue(value, f.arrayOK)
	if !ok {
		return singleError(f.typeError)
	}

	var v conform.Validation
	n := rv.Len()
	if f.maxLength != nil && n > *f.maxLength {
		v.AddError(conform.NewError(fmt.Sprintf("List is longer than %d", *f.maxLength)))
	} else if f.minLength != nil && n < *f.minLength {
		v.AddError(conform.NewError(fmt.Sprintf("List is shorter than %d", *f.minLength)))
	}
	for i := 0; i < n; i++ {
		// The pointer is only rendered for elements that produced issues.
		v.Extend(f.contents.Validate(rv.Index(i).Interface()), conform.IndexPointer(i))
	}
	return v
}

func (f *ListField) Introspect() conform.Introspection {
	return conform.NewIntrospection(f.introsType).
		Set("contents", f.contents.Introspect()).
		Set("min_length", f.minLength).
		Set("max_length", f.maxLength).
		Set("description", f.description)
}

func sequenceValue(value any, arrayOK bool) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		return rv, true
	case reflect.Array:
		return rv, arrayOK
	}
	return reflect.Value{}, false
}

// SetField validates the keys of a map as an unordered set of elements,
// matching the map[T]struct{} idiom. Since sets have no positions, the
// pointer for an element error is the element's bracketed rendered value;
// duplicate-valued elements therefore produce colliding pointers.
type SetField struct {
	contents             conform.Field
	minLength, maxLength *int
	description          string
}

// Set returns a field accepting maps whose keys match contents.
func Set(contents conform.Field) *SetField {
	if contents == nil {
		panic("fields: Set requires a contents field")
	}
	return &SetField{contents: contents}
}

func (f *SetField) MinLength(n int) *SetField {
	f.minLength = &n
	checkLengthRange(f.minLength, f.maxLength, "Set")
	return f
}

func (f *SetField) MaxLength(n int) *SetField {
	f.maxLength = &n
	checkLengthRange(f.minLength, f.maxLength, "Set")
	return f
}

func (f *SetField) Description(d string) *SetField {
	f.description = d
	return f
}

func (f *SetField) Validate(value any) conform.Validation {
	if value == nil {
		return singleError("Not a set")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return singleError("Not a set")
	}

	var v conform.Validation
	n := rv.Len()
	if f.maxLength != nil && n > *f.maxLength {
		v.AddError(conform.NewError(fmt.Sprintf("List is longer than %d", *f.maxLength)))
	} else if f.minLength != nil && n < *f.minLength {
		v.AddError(conform.NewError(fmt.Sprintf("List is shorter than %d", *f.minLength)))
	}

	// Deterministic reporting order for an unordered container.
	type element struct {
		pointer string
		value   any
	}
	elements := make([]element, 0, n)
	iter := rv.MapRange()
	for iter.Next() {
		ev := iter.Key().Interface()
		elements = append(elements, element{pointer: fmt.Sprintf("[%v]", ev), value: ev})
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].pointer < elements[j].pointer })
	for _, e := range elements {
		v.Extend(f.contents.Validate(e.value), e.pointer)
	}
	return v
}

func (f *SetField) Introspect() conform.Introspection {
	return conform.NewIntrospection("set").
		Set("contents", f.contents.Introspect()).
		Set("min_length", f.minLength).
		Set("max_length", f.maxLength).
		Set("description", f.description)
}

// TupleField validates a fixed-arity sequence with one field per
// position. An arity mismatch yields exactly one error naming both counts
// and suppresses per-element validation.
type TupleField struct {
	contents    []conform.Field
	description string
}

// Tuple returns a field accepting sequences of exactly len(contents)
// elements, validated position by position.
func Tuple(contents ...conform.Field) *TupleField {
	if len(contents) == 0 {
		panic("fields: Tuple requires at least one contents field")
	}
	for i, c := range contents {
		if c == nil {
			panic(fmt.Sprintf("fields: Tuple contents field %d is nil", i))
		}
	}
	return &TupleField{contents: contents}
}

func (f *TupleField) Description(d string) *TupleField {
	f.description = d
	return f
}

func (f *TupleField) Validate(value any) conform.Validation {
	rv, ok := sequenceValue(value, true)
	if !ok {
		return singleError("Not a tuple")
	}
	if rv.Len() != len(f.contents) {
		return singleError(fmt.Sprintf(
			"Number of elements %d does not match expected %d", rv.Len(), len(f.contents),
		))
	}
	var v conform.Validation
	for i, c := range f.contents {
		v.Extend(c.Validate(rv.Index(i).Interface()), conform.IndexPointer(i))
	}
	return v
}

func (f *TupleField) Introspect() conform.Introspection {
	contents := make([]any, len(f.contents))
	for i, c := range f.contents {
		contents[i] = c.Introspect()
	}
	return conform.NewIntrospection("tuple").
		Set("contents", contents).
		Set("description", f.description)
}

// SchemalessDictionaryField validates a mapping with no fixed keys: every
// key against one key field (default Hashable) and every value against
// one value field (default Anything).
type SchemalessDictionaryField struct {
	keyType              conform.Field
	valueType            conform.Field
	minLength, maxLength *int
	description          string

	defaultKeyType   bool
	defaultValueType bool
}

// SchemalessDictionary returns a field accepting any map.
func SchemalessDictionary() *SchemalessDictionaryField {
	return &SchemalessDictionaryField{
		keyType:          Hashable(),
		valueType:        Anything(),
		defaultKeyType:   true,
		defaultValueType: true,
	}
}

func (f *SchemalessDictionaryField) KeyType(kf conform.Field) *SchemalessDictionaryField {
	if kf == nil {
		panic("fields: SchemalessDictionary key type cannot be nil")
	}
	f.keyType = kf
	f.defaultKeyType = false
	return f
}

func (f *SchemalessDictionaryField) ValueType(vf conform.Field) *SchemalessDictionaryField {
	if vf == nil {
		panic("fields: SchemalessDictionary value type cannot be nil")
	}
	f.valueType = vf
	f.defaultValueType = false
	return f
}

func (f *SchemalessDictionaryField) MinLength(n int) *SchemalessDictionaryField {
	f.minLength = &n
	checkLengthRange(f.minLength, f.maxLength, "SchemalessDictionary")
	return f
}

func (f *SchemalessDictionaryField) MaxLength(n int) *SchemalessDictionaryField {
	f.maxLength = &n
	checkLengthRange(f.minLength, f.maxLength, "SchemalessDictionary")
	return f
}

func (f *SchemalessDictionaryField) Description(d string) *SchemalessDictionaryField {
	f.description = d
	return f
}

func (f *SchemalessDictionaryField) Validate(value any) conform.Validation {
	if value == nil {
		return singleError("Not a dict")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return singleError("Not a dict")
	}

	var v conform.Validation
	n := rv.Len()
	if f.maxLength != nil && n > *f.maxLength {
		v.AddError(conform.NewError(fmt.Sprintf("Dict contains more than %d value(s)", *f.maxLength)))
	} else if f.minLength != nil && n < *f.minLength {
		v.AddError(conform.NewError(fmt.Sprintf("Dict contains fewer than %d value(s)", *f.minLength)))
	}

	type entry struct {
		pointer string
		key     any
		value   any
	}
	entries := make([]entry, 0, n)
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		entries = append(entries, entry{
			pointer: fmt.Sprintf("%v", k),
			key:     k,
			value:   iter.Value().Interface(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].pointer < entries[j].pointer })
	for _, e := range entries {
		v.Extend(f.keyType.Validate(e.key), e.pointer)
		v.Extend(f.valueType.Validate(e.value), e.pointer)
	}
	return v
}

func (f *SchemalessDictionaryField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("schemaless_dictionary").
		Set("min_length", f.minLength).
		Set("max_length", f.maxLength).
		Set("description", f.description)
	if !f.defaultKeyType {
		in["key_type"] = f.keyType.Introspect()
	}
	if !f.defaultValueType {
		in["value_type"] = f.valueType.Introspect()
	}
	return in
}
