package fields

import (
	"fmt"
	"sync"

	conform "github.com/reifylabs/conform"
)

// Resolver turns a symbol path string (e.g. "pkg/module:Symbol") into a
// live object. The mechanism is platform-specific and always injected;
// the core only requires that resolution be referentially transparent for
// the life of the process, which is what makes caching safe.
type Resolver func(path string) (any, error)

// SymbolCache is a process-wide, append-only cache of resolved symbols
// keyed by path string. Inserts are idempotent; concurrent population
// races repeat work but never produce incorrect results.
type SymbolCache struct {
	mu sync.RWMutex
	m  map[string]any
}

// NewSymbolCache returns an empty cache.
func NewSymbolCache() *SymbolCache {
	return &SymbolCache{m: map[string]any{}}
}

func (c *SymbolCache) get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[path]
	return v, ok
}

func (c *SymbolCache) put(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[path] = value
}

// SymbolPathField validates that a string resolves to a live object via
// an injected resolver; resolver faults are converted to errors, never
// propagated. A value schema may further validate the resolved object.
type SymbolPathField struct {
	resolver    Resolver
	cache       *SymbolCache
	valueSchema conform.Field
	description string
}

// SymbolPath returns a field resolving strings through the given
// resolver. Each field gets its own cache unless one is shared with
// Cache.
func SymbolPath(resolver Resolver) *SymbolPathField {
	if resolver == nil {
		panic("fields: SymbolPath requires a resolver")
	}
	return &SymbolPathField{resolver: resolver, cache: NewSymbolCache()}
}

// Cache shares a resolution cache across fields.
func (f *SymbolPathField) Cache(c *SymbolCache) *SymbolPathField {
	if c == nil {
		panic("fields: SymbolPath cache cannot be nil")
	}
	f.cache = c
	return f
}

// ValueSchema additionally validates the resolved object.
func (f *SymbolPathField) ValueSchema(schema conform.Field) *SymbolPathField {
	if schema == nil {
		panic("fields: SymbolPath value schema cannot be nil")
	}
	f.valueSchema = schema
	return f
}

func (f *SymbolPathField) Description(d string) *SymbolPathField {
	f.description = d
	return f
}

func (f *SymbolPathField) Validate(value any) conform.Validation {
	path, ok := asString(value)
	if !ok {
		return singleError("Not a unicode string")
	}

	resolved, err := f.resolve(path)
	if err != nil {
		return conform.Validation{Errors: []conform.Error{
			conform.NewError(fmt.Sprintf("Cannot resolve path %q: %s", path, err)).
				WithCode(conform.ErrorCodeUnknown),
		}}
	}
	if f.valueSchema != nil {
		return f.valueSchema.Validate(resolved)
	}
	return conform.Validation{}
}

func (f *SymbolPathField) resolve(path string) (any, error) {
	if v, ok := f.cache.get(path); ok {
		return v, nil
	}
	v, err := f.resolver(path)
	if err != nil {
		return nil, err
	}
	f.cache.put(path, v)
	return v, nil
}

func (f *SymbolPathField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("symbol_path").Set("description", f.description)
	if f.valueSchema != nil {
		in["value_schema"] = f.valueSchema.Introspect()
	}
	return in
}
