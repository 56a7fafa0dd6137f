package conform

import (
	"reflect"

	json "github.com/goccy/go-json"
)

// Introspection is the machine-readable description of a field: a nested
// mapping holding only JSON-representable values (strings, numbers,
// booleans, nulls, sequences, string-keyed mappings). Keys whose value is
// absent are omitted rather than emitted as null, keeping documents
// compact. The key names emitted per field kind are a compatibility
// surface for documentation tooling and must remain stable.
type Introspection map[string]any

// NewIntrospection starts a document with its "type" discriminator.
func NewIntrospection(kind string) Introspection {
	return Introspection{"type": kind}
}

// Set records a key, skipping absent values: nils, nil pointers, empty
// strings, and empty slices/maps are dropped. Non-nil pointers are
// dereferenced. Take care not to route a legitimately-empty value through
// Set; use plain assignment for those (e.g. allow_extra_keys false).
func (in Introspection) Set(key string, value any) Introspection {
	if value == nil {
		return in
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return in
		}
		return in.Set(key, rv.Elem().Interface())
	case reflect.String:
		if rv.Len() == 0 {
			return in
		}
	case reflect.Slice, reflect.Map:
		if rv.IsNil() || rv.Len() == 0 {
			return in
		}
	}
	in[key] = value
	return in
}

// JSON renders the document as JSON.
func (in Introspection) JSON() ([]byte, error) {
	return json.Marshal(in)
}
