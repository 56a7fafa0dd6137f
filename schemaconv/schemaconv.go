// Package schemaconv builds conform field trees from schema documents:
// nested mappings shaped like introspection output, loaded from YAML or
// JSON. It is the inverse of Field.Introspect for every kind that can be
// described by data alone; kinds that need live code (predicates,
// resolvers) are rejected with an error.
package schemaconv

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	conform "github.com/reifylabs/conform"
	"github.com/reifylabs/conform/fields"
)

// Diag collects non-fatal findings from a document import, such as keys
// that were present but not understood.
type Diag struct {
	Warnings []string
}

func (d *Diag) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// FromYAML builds a field from a YAML schema document.
func FromYAML(data []byte) (conform.Field, *Diag, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Diag{}, fmt.Errorf("schemaconv: parse YAML: %w", err)
	}
	return Build(doc)
}

// FromJSON builds a field from a JSON schema document.
func FromJSON(data []byte) (conform.Field, *Diag, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Diag{}, fmt.Errorf("schemaconv: parse JSON: %w", err)
	}
	return Build(doc)
}

// Build constructs a field from an already-decoded schema document.
func Build(doc map[string]any) (conform.Field, *Diag, error) {
	d := &Diag{}
	f, err := build(doc, d)
	return f, d, err
}

func build(doc map[string]any, d *Diag) (conform.Field, error) {
	kind, _ := doc["type"].(string)
	if kind == "" {
		return nil, fmt.Errorf("schemaconv: document has no %q key", "type")
	}

	f, err := buildKind(kind, doc, d)
	if err != nil {
		return nil, err
	}
	// Modifier markers ride on the wrapped field's own document.
	if v, _ := doc["optional"].(bool); v {
		f = fields.Optional(f)
	}
	if v, _ := doc["deprecated"].(bool); v {
		f = fields.Deprecated(f)
	}
	return f, nil
}

func buildKind(kind string, doc map[string]any, d *Diag) (conform.Field, error) {
	switch kind {
	case "boolean":
		var c struct{ Description string }
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		return fields.Boolean().Description(c.Description), nil

	case "integer":
		var c struct {
			Description      string
			Gt, Gte, Lt, Lte *int64
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		f := fields.Integer().Description(c.Description)
		if c.Gt != nil {
			f.Gt(*c.Gt)
		}
		if c.Gte != nil {
			f.Gte(*c.Gte)
		}
		if c.Lt != nil {
			f.Lt(*c.Lt)
		}
		if c.Lte != nil {
			f.Lte(*c.Lte)
		}
		return f, nil

	case "float":
		var c struct {
			Description      string
			Gt, Gte, Lt, Lte *float64
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		f := fields.Float().Description(c.Description)
		if c.Gt != nil {
			f.Gt(*c.Gt)
		}
		if c.Gte != nil {
			f.Gte(*c.Gte)
		}
		if c.Lt != nil {
			f.Lt(*c.Lt)
		}
		if c.Lte != nil {
			f.Lte(*c.Lte)
		}
		return f, nil

	case "decimal":
		var c struct {
			Description      string
			Gt, Gte, Lt, Lte *string
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		f := fields.Decimal().Description(c.Description)
		for _, b := range []struct {
			raw string
			set func(decimal.Decimal) *fields.DecimalField
		}{
			{deref(c.Gt), f.Gt}, {deref(c.Gte), f.Gte}, {deref(c.Lt), f.Lt}, {deref(c.Lte), f.Lte},
		} {
			if b.raw == "" {
				continue
			}
			dv, err := decimal.NewFromString(b.raw)
			if err != nil {
				return nil, fmt.Errorf("schemaconv: decimal bound %q: %w", b.raw, err)
			}
			b.set(dv)
		}
		return f, nil

	case "unicode":
		var c struct {
			Description string `mapstructure:"description"`
			MinLength   *int   `mapstructure:"min_length"`
			MaxLength   *int   `mapstructure:"max_length"`
			AllowBlank  *bool  `mapstructure:"allow_blank"`
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if err := checkLengths(kind, c.MinLength, c.MaxLength); err != nil {
			return nil, err
		}
		f := fields.String().Description(c.Description)
		if c.MinLength != nil {
			f.MinLength(*c.MinLength)
		}
		if c.MaxLength != nil {
			f.MaxLength(*c.MaxLength)
		}
		if c.AllowBlank != nil && !*c.AllowBlank {
			f.DisallowBlank()
		}
		return f, nil

	case "bytes":
		var c struct {
			Description string `mapstructure:"description"`
			MinLength   *int   `mapstructure:"min_length"`
			MaxLength   *int   `mapstructure:"max_length"`
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if err := checkLengths(kind, c.MinLength, c.MaxLength); err != nil {
			return nil, err
		}
		f := fields.Bytes().Description(c.Description)
		if c.MinLength != nil {
			f.MinLength(*c.MinLength)
		}
		if c.MaxLength != nil {
			f.MaxLength(*c.MaxLength)
		}
		return f, nil

	case "constant":
		var c struct {
			Description string
			Values      []any
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if len(c.Values) == 0 {
			return nil, fmt.Errorf("schemaconv: constant document requires values")
		}
		for _, v := range c.Values {
			if !hashable(v) {
				return nil, fmt.Errorf("schemaconv: constant value %v is not hashable", v)
			}
		}
		return fields.Constant(c.Values...).Description(c.Description), nil

	case "anything":
		var c struct{ Description string }
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		return fields.Anything().Description(c.Description), nil

	case "hashable":
		var c struct{ Description string }
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		return fields.Hashable().Description(c.Description), nil

	case "null":
		return fields.Null(), nil

	case "unicode_decimal":
		var c struct{ Description string }
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		return fields.DecimalString().Description(c.Description), nil

	case "datetime":
		var c struct {
			Description      string
			Gt, Gte, Lt, Lte *string
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		f := fields.Time().Description(c.Description)
		for _, b := range []struct {
			raw string
			set func(time.Time) *fields.TimeField
		}{
			{deref(c.Gt), f.Gt}, {deref(c.Gte), f.Gte}, {deref(c.Lt), f.Lt}, {deref(c.Lte), f.Lte},
		} {
			if b.raw == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, b.raw)
			if err != nil {
				return nil, fmt.Errorf("schemaconv: datetime bound %q: %w", b.raw, err)
			}
			b.set(t)
		}
		return f, nil

	case "timedelta":
		var c struct {
			Description      string
			Gt, Gte, Lt, Lte *string
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		f := fields.Duration().Description(c.Description)
		for _, b := range []struct {
			raw string
			set func(time.Duration) *fields.DurationField
		}{
			{deref(c.Gt), f.Gt}, {deref(c.Gte), f.Gte}, {deref(c.Lt), f.Lt}, {deref(c.Lte), f.Lte},
		} {
			if b.raw == "" {
				continue
			}
			dur, err := time.ParseDuration(b.raw)
			if err != nil {
				return nil, fmt.Errorf("schemaconv: timedelta bound %q: %w", b.raw, err)
			}
			b.set(dur)
		}
		return f, nil

	case "list", "sequence", "set":
		var c struct {
			Description string         `mapstructure:"description"`
			Contents    map[string]any `mapstructure:"contents"`
			MinLength   *int           `mapstructure:"min_length"`
			MaxLength   *int           `mapstructure:"max_length"`
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if c.Contents == nil {
			return nil, fmt.Errorf("schemaconv: %s document requires contents", kind)
		}
		if err := checkLengths(kind, c.MinLength, c.MaxLength); err != nil {
			return nil, err
		}
		contents, err := build(c.Contents, d)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "list":
			f := fields.List(contents).Description(c.Description)
			applyLengths(c.MinLength, c.MaxLength, f.MinLength, f.MaxLength)
			return f, nil
		case "sequence":
			f := fields.Sequence(contents).Description(c.Description)
			applyLengths(c.MinLength, c.MaxLength, f.MinLength, f.MaxLength)
			return f, nil
		default:
			f := fields.Set(contents).Description(c.Description)
			if c.MinLength != nil {
				f.MinLength(*c.MinLength)
			}
			if c.MaxLength != nil {
				f.MaxLength(*c.MaxLength)
			}
			return f, nil
		}

	case "tuple":
		var c struct {
			Description string
			Contents    []map[string]any
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if len(c.Contents) == 0 {
			return nil, fmt.Errorf("schemaconv: tuple document requires contents")
		}
		children, err := buildAll(c.Contents, d)
		if err != nil {
			return nil, err
		}
		return fields.Tuple(children...).Description(c.Description), nil

	case "schemaless_dictionary":
		var c struct {
			Description string         `mapstructure:"description"`
			KeyType     map[string]any `mapstructure:"key_type"`
			ValueType   map[string]any `mapstructure:"value_type"`
			MinLength   *int           `mapstructure:"min_length"`
			MaxLength   *int           `mapstructure:"max_length"`
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if err := checkLengths(kind, c.MinLength, c.MaxLength); err != nil {
			return nil, err
		}
		f := fields.SchemalessDictionary().Description(c.Description)
		if c.KeyType != nil {
			kf, err := build(c.KeyType, d)
			if err != nil {
				return nil, err
			}
			f.KeyType(kf)
		}
		if c.ValueType != nil {
			vf, err := build(c.ValueType, d)
			if err != nil {
				return nil, err
			}
			f.ValueType(vf)
		}
		if c.MinLength != nil {
			f.MinLength(*c.MinLength)
		}
		if c.MaxLength != nil {
			f.MaxLength(*c.MaxLength)
		}
		return f, nil

	case "dictionary":
		return buildDictionary(doc, d)

	case "any", "all", "chain":
		key := map[string]string{"any": "options", "all": "requirements", "chain": "constraints"}[kind]
		raw, _ := doc[key].([]any)
		children := make([]conform.Field, 0, len(raw))
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schemaconv: %s %s entries must be documents", kind, key)
			}
			child, err := build(m, d)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("schemaconv: %s document requires %s", kind, key)
		}
		description, _ := doc["description"].(string)
		switch kind {
		case "any":
			return fields.Any(children...).Description(description), nil
		case "all":
			return fields.All(children...).Description(description), nil
		default:
			return fields.Chain(children...).Description(description), nil
		}

	case "polymorph":
		var c struct {
			Description string         `mapstructure:"description"`
			SwitchField string         `mapstructure:"switch_field"`
			ContentsMap map[string]any `mapstructure:"contents_map"`
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		if c.SwitchField == "" || len(c.ContentsMap) == 0 {
			return nil, fmt.Errorf("schemaconv: polymorph document requires switch_field and contents_map")
		}
		variants := make(map[string]conform.Field, len(c.ContentsMap))
		for tag, raw := range c.ContentsMap {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schemaconv: polymorph variant %q must be a document", tag)
			}
			variant, err := build(m, d)
			if err != nil {
				return nil, err
			}
			variants[tag] = variant
		}
		return fields.Polymorph(c.SwitchField, variants).Description(c.Description), nil

	case "nullable":
		inner, ok := doc["nullable"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemaconv: nullable document requires a nullable sub-document")
		}
		wrapped, err := build(inner, d)
		if err != nil {
			return nil, err
		}
		return fields.Nullable(wrapped), nil

	case "email_address":
		var c struct {
			Description     string   `mapstructure:"description"`
			DomainWhitelist []string `mapstructure:"domain_whitelist"`
		}
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		f := fields.EmailAddress().Description(c.Description)
		if len(c.DomainWhitelist) > 0 {
			f.WhitelistDomains(c.DomainWhitelist...)
		}
		return f, nil

	case "ipv4_address":
		var c struct{ Description string }
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		return fields.IPv4Address().Description(c.Description), nil

	case "ipv6_address":
		var c struct{ Description string }
		if err := decode(kind, doc, &c, d); err != nil {
			return nil, err
		}
		return fields.IPv6Address().Description(c.Description), nil

	case "boolean_validator", "symbol_path":
		return nil, fmt.Errorf("schemaconv: field type %q needs live code and cannot be built from a document", kind)

	default:
		return nil, fmt.Errorf("schemaconv: unsupported field type %q", kind)
	}
}

func buildDictionary(doc map[string]any, d *Diag) (conform.Field, error) {
	var c struct {
		Description    string           `mapstructure:"description"`
		Contents       map[string]any   `mapstructure:"contents"`
		DisplayOrder   []string         `mapstructure:"display_order"`
		OptionalKeys   []string         `mapstructure:"optional_keys"`
		AllowExtraKeys bool             `mapstructure:"allow_extra_keys"`
		KeyPatterns    []map[string]any `mapstructure:"key_patterns"`
		ExtraKeys      map[string]any   `mapstructure:"extra_keys"`
	}
	if err := decode("dictionary", doc, &c, d); err != nil {
		return nil, err
	}

	f := fields.Dictionary().Description(c.Description)

	// display_order, when present, fixes declaration order; leftover
	// names append in sorted order via DictionaryOf-style fallback.
	declared := map[string]bool{}
	for _, name := range c.DisplayOrder {
		raw, ok := c.Contents[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemaconv: dictionary display_order names unknown key %q", name)
		}
		vf, err := build(raw, d)
		if err != nil {
			return nil, err
		}
		f.Key(name, vf)
		declared[name] = true
	}
	names := make([]string, 0, len(c.Contents))
	for name := range c.Contents {
		if !declared[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		raw, ok := c.Contents[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemaconv: dictionary key %q must be a document", name)
		}
		vf, err := build(raw, d)
		if err != nil {
			return nil, err
		}
		f.Key(name, vf)
	}

	for _, p := range c.KeyPatterns {
		kf, vf, err := buildPair(p, d)
		if err != nil {
			return nil, err
		}
		f.KeyField(kf, vf)
	}
	f.OptionalKeys(c.OptionalKeys...)
	if c.ExtraKeys != nil {
		kf, vf, err := buildPair(c.ExtraKeys, d)
		if err != nil {
			return nil, err
		}
		f.ExtraKeys(kf, vf)
	} else if c.AllowExtraKeys {
		f.AllowExtraKeys()
	}
	return f, nil
}

func buildPair(doc map[string]any, d *Diag) (conform.Field, conform.Field, error) {
	rawKey, ok := doc["key_type"].(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("schemaconv: key pair requires a key_type document")
	}
	rawValue, ok := doc["value_type"].(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("schemaconv: key pair requires a value_type document")
	}
	kf, err := build(rawKey, d)
	if err != nil {
		return nil, nil, err
	}
	vf, err := build(rawValue, d)
	if err != nil {
		return nil, nil, err
	}
	return kf, vf, nil
}

func buildAll(docs []map[string]any, d *Diag) ([]conform.Field, error) {
	out := make([]conform.Field, 0, len(docs))
	for _, doc := range docs {
		f, err := build(doc, d)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// decode maps a document onto a per-kind config struct, warning about
// keys the kind does not understand.
func decode(kind string, doc map[string]any, out any, d *Diag) error {
	trimmed := make(map[string]any, len(doc))
	for k, v := range doc {
		switch k {
		case "type", "deprecated", "optional":
			continue
		}
		trimmed[k] = v
	}

	md := &mapstructure.Metadata{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		Metadata:         md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("schemaconv: %w", err)
	}
	if err := dec.Decode(trimmed); err != nil {
		return fmt.Errorf("schemaconv: decode %s document: %w", kind, err)
	}
	for _, k := range md.Unused {
		d.warnf("ignored key %q on %s document", k, kind)
	}
	return nil
}

// checkLengths rejects inverted length ranges before they reach a field
// constructor, which would panic; document faults must surface as errors.
func checkLengths(kind string, min, max *int) error {
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("schemaconv: %s document has min_length %d greater than max_length %d", kind, *min, *max)
	}
	return nil
}

// hashable mirrors the constructor's map-key requirement for constant
// values, again to fail with an error rather than a panic.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

func applyLengths[T any](min, max *int, setMin, setMax func(int) T) {
	if min != nil {
		setMin(*min)
	}
	if max != nil {
		setMax(*max)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
