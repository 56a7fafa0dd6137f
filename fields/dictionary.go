package fields

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	conform "github.com/reifylabs/conform"
)

// DictionaryField validates a mapping against an ordered list of
// (key field, value field) pairs. Key fields that are single-string
// constants act as named keys (required unless marked optional); all
// other pairs are variable-key patterns tried in declaration order for
// keys that match no named key. Unmodeled keys are rejected unless extra
// keys are allowed, optionally constrained by a fallback pair.
//
// Validation makes a single pass and reports every missing, invalid and
// unrecognized key; only the mapping type check short-circuits.
type DictionaryField struct {
	pairs        []keyPair
	optionalKeys map[string]struct{}
	allowExtra   bool
	extraKey     conform.Field
	extraValue   conform.Field
	description  string
}

type keyPair struct {
	name       string // non-empty for named keys
	keyField   conform.Field
	valueField conform.Field
}

// Dictionary returns an empty dictionary builder. Keys are declared with
// Key/KeyField; declaration order drives error reporting and the
// display_order introspection list.
func Dictionary() *DictionaryField {
	return &DictionaryField{optionalKeys: map[string]struct{}{}}
}

// DictionaryOf builds a dictionary from a name-to-field map. Names are
// declared in sorted order so that behavior is reproducible.
func DictionaryOf(contents map[string]conform.Field) *DictionaryField {
	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)

	d := Dictionary()
	for _, name := range names {
		d.Key(name, contents[name])
	}
	return d
}

// Key declares a named key. Re-declaring a name overrides its value field
// in place, keeping the original declaration position.
func (f *DictionaryField) Key(name string, valueField conform.Field) *DictionaryField {
	if valueField == nil {
		panic(fmt.Sprintf("fields: Dictionary key %q requires a value field", name))
	}
	for i := range f.pairs {
		if f.pairs[i].name == name && f.pairs[i].name != "" {
			f.pairs[i].valueField = valueField
			return f
		}
	}
	f.pairs = append(f.pairs, keyPair{
		name:       name,
		keyField:   Constant(name),
		valueField: valueField,
	})
	return f
}

// KeyField declares a (key field, value field) pair. A single-string
// Constant key field is folded into a named key; anything else becomes a
// variable-key pattern.
func (f *DictionaryField) KeyField(keyField, valueField conform.Field) *DictionaryField {
	if keyField == nil || valueField == nil {
		panic("fields: Dictionary KeyField requires both a key field and a value field")
	}
	if c, ok := keyField.(*ConstantField); ok {
		if name, single := c.single(); single {
			return f.Key(name, valueField)
		}
	}
	f.pairs = append(f.pairs, keyPair{keyField: keyField, valueField: valueField})
	return f
}

// OptionalKeys marks named keys whose absence is not an error.
func (f *DictionaryField) OptionalKeys(names ...string) *DictionaryField {
	for _, n := range names {
		f.optionalKeys[n] = struct{}{}
	}
	return f
}

// ReplaceOptionalKeys discards previously-marked optional keys before
// marking the given ones.
func (f *DictionaryField) ReplaceOptionalKeys(names ...string) *DictionaryField {
	f.optionalKeys = map[string]struct{}{}
	return f.OptionalKeys(names...)
}

// AllowExtraKeys permits unmodeled keys without constraining them.
func (f *DictionaryField) AllowExtraKeys() *DictionaryField {
	f.allowExtra = true
	return f
}

// ExtraKeys permits unmodeled keys and requires each to satisfy the
// given key and value fields.
func (f *DictionaryField) ExtraKeys(keyField, valueField conform.Field) *DictionaryField {
	if keyField == nil || valueField == nil {
		panic("fields: Dictionary ExtraKeys requires both a key field and a value field")
	}
	f.allowExtra = true
	f.extraKey = keyField
	f.extraValue = valueField
	return f
}

func (f *DictionaryField) Description(d string) *DictionaryField {
	f.description = d
	return f
}

// Extend returns a new dictionary builder seeded with this one's
// configuration. Chained Key declarations override same-named keys while
// keeping their original position; this is how schemas are composed.
func (f *DictionaryField) Extend() *DictionaryField {
	clone := &DictionaryField{
		pairs:        append([]keyPair(nil), f.pairs...),
		optionalKeys: make(map[string]struct{}, len(f.optionalKeys)),
		allowExtra:   f.allowExtra,
		extraKey:     f.extraKey,
		extraValue:   f.extraValue,
		description:  f.description,
	}
	for k := range f.optionalKeys {
		clone.optionalKeys[k] = struct{}{}
	}
	return clone
}

type dictEntry struct {
	rendered string
	key      any
	value    any
	isString bool
}

func (f *DictionaryField) Validate(value any) conform.Validation {
	if value == nil {
		return singleError("Not a dict")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return singleError("Not a dict")
	}

	entries := make([]dictEntry, 0, rv.Len())
	byName := map[string]int{}
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		e := dictEntry{key: k, value: iter.Value().Interface()}
		if s, ok := k.(string); ok {
			e.rendered = s
			e.isString = true
		} else {
			e.rendered = fmt.Sprintf("%v", k)
		}
		entries = append(entries, e)
		if e.isString {
			byName[e.rendered] = len(entries) - 1
		}
	}

	var v conform.Validation
	claimed := make([]bool, len(entries))

	// Named keys first, in declaration order.
	for _, p := range f.pairs {
		if p.name == "" {
			continue
		}
		idx, present := byName[p.name]
		if !present {
			if _, optional := f.optionalKeys[p.name]; !optional {
				v.AddError(conform.NewError(fmt.Sprintf("Missing key: %s", p.name)).
					WithCode(conform.ErrorCodeMissing).
					At(p.name))
			}
			continue
		}
		claimed[idx] = true
		v.Extend(p.valueField.Validate(entries[idx].value), p.name)
	}

	// Remaining keys try variable patterns, then the extra-keys policy.
	// Sorted by rendered key so reporting is reproducible.
	order := make([]int, 0, len(entries))
	for i := range entries {
		if !claimed[i] {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		return entries[order[a]].rendered < entries[order[b]].rendered
	})

	var unknown []string
	for _, i := range order {
		e := entries[i]
		matched := false
		for _, p := range f.pairs {
			if p.name != "" {
				continue
			}
			if kv := p.keyField.Validate(e.key); !kv.IsValid() {
				continue
			}
			v.Extend(p.valueField.Validate(e.value), e.rendered)
			matched = true
			break
		}
		if matched {
			continue
		}
		switch {
		case f.extraKey != nil:
			v.Extend(f.extraKey.Validate(e.key), e.rendered)
			v.Extend(f.extraValue.Validate(e.value), e.rendered)
		case f.allowExtra:
			// unmodeled and unconstrained
		default:
			unknown = append(unknown, e.rendered)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		v.AddError(conform.NewError(
			fmt.Sprintf("Extra keys present: %s", strings.Join(unknown, ", ")),
		).WithCode(conform.ErrorCodeUnknown))
	}
	return v
}

func (f *DictionaryField) Introspect() conform.Introspection {
	contents := conform.Introspection{}
	var displayOrder []string
	var patterns []any
	for _, p := range f.pairs {
		if p.name != "" {
			contents[p.name] = p.valueField.Introspect()
			displayOrder = append(displayOrder, p.name)
			continue
		}
		patterns = append(patterns, conform.Introspection{
			"key_type":   p.keyField.Introspect(),
			"value_type": p.valueField.Introspect(),
		})
	}
	optional := make([]string, 0, len(f.optionalKeys))
	for k := range f.optionalKeys {
		optional = append(optional, k)
	}
	sort.Strings(optional)

	in := conform.NewIntrospection("dictionary").
		Set("contents", contents).
		Set("optional_keys", optional).
		Set("display_order", displayOrder).
		Set("key_patterns", patterns).
		Set("description", f.description)
	in["allow_extra_keys"] = f.allowExtra
	if f.extraKey != nil {
		in["extra_keys"] = conform.Introspection{
			"key_type":   f.extraKey.Introspect(),
			"value_type": f.extraValue.Introspect(),
		}
	}
	return in
}
