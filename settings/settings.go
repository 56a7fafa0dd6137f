// Package settings layers defaults-merging on top of a Dictionary
// schema: a Settings value owns a schema and a stack of default
// mappings, and Apply deep-merges caller data over those defaults before
// validating the result.
package settings

import (
	conform "github.com/reifylabs/conform"
	"github.com/reifylabs/conform/fields"
)

// Settings couples a Dictionary schema with layered defaults. Later
// default layers override earlier ones key by key; nested mappings merge
// recursively.
type Settings struct {
	schema   *fields.DictionaryField
	defaults []map[string]any
}

// New returns settings validated by the given schema.
func New(schema *fields.DictionaryField) *Settings {
	if schema == nil {
		panic("settings: New requires a schema")
	}
	return &Settings{schema: schema}
}

// WithDefaults pushes a layer of defaults. Returns the receiver for
// chaining during construction.
func (s *Settings) WithDefaults(defaults map[string]any) *Settings {
	s.defaults = append(s.defaults, defaults)
	return s
}

// Schema returns the underlying schema, e.g. for introspection.
func (s *Settings) Schema() conform.Field { return s.schema }

// Apply deep-merges data over the default layers and validates the
// merged mapping. On failure it returns a *conform.ValidationError
// enumerating every collected error.
func (s *Settings) Apply(data map[string]any) (map[string]any, error) {
	merged := map[string]any{}
	for _, layer := range s.defaults {
		merged = deepMerge(merged, layer)
	}
	merged = deepMerge(merged, data)

	if err := conform.Check(s.schema, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// deepMerge merges over onto base without mutating either: nested
// string-keyed maps merge recursively, everything else replaces.
func deepMerge(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		bm, okBase := out[k].(map[string]any)
		om, okOver := v.(map[string]any)
		if okBase && okOver {
			out[k] = deepMerge(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}
