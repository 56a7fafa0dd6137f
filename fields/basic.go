package fields

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	conform "github.com/reifylabs/conform"
)

// BooleanField ensures that the value is a boolean.
type BooleanField struct {
	description string
}

// Boolean returns a field accepting only booleans.
func Boolean() *BooleanField { return &BooleanField{} }

// Description sets the free-text description used in introspection.
func (f *BooleanField) Description(d string) *BooleanField {
	f.description = d
	return f
}

func (f *BooleanField) Validate(value any) conform.Validation {
	if _, ok := value.(bool); !ok {
		return singleError("Not a boolean")
	}
	return conform.Validation{}
}

func (f *BooleanField) Introspect() conform.Introspection {
	return conform.NewIntrospection("boolean").Set("description", f.description)
}

// IntegerField ensures that the value is an integer and optionally
// enforces gt/gte/lt/lte boundaries.
type IntegerField struct {
	bounds      bounds[int64]
	description string
}

// Integer returns a field accepting any Go integer kind.
func Integer() *IntegerField { return &IntegerField{} }

func (f *IntegerField) Gt(v int64) *IntegerField  { f.bounds.gt = &v; return f }
func (f *IntegerField) Gte(v int64) *IntegerField { f.bounds.gte = &v; return f }
func (f *IntegerField) Lt(v int64) *IntegerField  { f.bounds.lt = &v; return f }
func (f *IntegerField) Lte(v int64) *IntegerField { f.bounds.lte = &v; return f }
func (f *IntegerField) Description(d string) *IntegerField {
	f.description = d
	return f
}

func (f *IntegerField) Validate(value any) conform.Validation {
	if _, ok := value.(bool); ok {
		return singleError("Not an integer")
	}
	n, ok := asInt64(value)
	if !ok {
		return singleError("Not an integer")
	}
	return conform.Validation{Errors: f.bounds.check(n)}
}

func (f *IntegerField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("integer").Set("description", f.description)
	f.bounds.introspect(in)
	return in
}

// FloatField ensures that the value is a float (integers are also
// admitted) and optionally enforces gt/gte/lt/lte boundaries.
type FloatField struct {
	bounds      bounds[float64]
	description string
}

// Float returns a field accepting floats and integers.
func Float() *FloatField { return &FloatField{} }

func (f *FloatField) Gt(v float64) *FloatField  { f.bounds.gt = &v; return f }
func (f *FloatField) Gte(v float64) *FloatField { f.bounds.gte = &v; return f }
func (f *FloatField) Lt(v float64) *FloatField  { f.bounds.lt = &v; return f }
func (f *FloatField) Lte(v float64) *FloatField { f.bounds.lte = &v; return f }
func (f *FloatField) Description(d string) *FloatField {
	f.description = d
	return f
}

func (f *FloatField) Validate(value any) conform.Validation {
	if _, ok := value.(bool); ok {
		return singleError("Not a float")
	}
	n, ok := asFloat64(value)
	if !ok {
		return singleError("Not a float")
	}
	return conform.Validation{Errors: f.bounds.check(n)}
}

func (f *FloatField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("float").Set("description", f.description)
	f.bounds.introspect(in)
	return in
}

// DecimalField ensures that the value is a decimal.Decimal and optionally
// enforces gt/gte/lt/lte boundaries.
type DecimalField struct {
	gt, gte, lt, lte *decimal.Decimal
	description      string
}

// Decimal returns a field accepting decimal.Decimal values.
func Decimal() *DecimalField { return &DecimalField{} }

func (f *DecimalField) Gt(v decimal.Decimal) *DecimalField  { f.gt = &v; return f }
func (f *DecimalField) Gte(v decimal.Decimal) *DecimalField { f.gte = &v; return f }
func (f *DecimalField) Lt(v decimal.Decimal) *DecimalField  { f.lt = &v; return f }
func (f *DecimalField) Lte(v decimal.Decimal) *DecimalField { f.lte = &v; return f }
func (f *DecimalField) Description(d string) *DecimalField {
	f.description = d
	return f
}

func (f *DecimalField) Validate(value any) conform.Validation {
	var d decimal.Decimal
	switch dv := value.(type) {
	case decimal.Decimal:
		d = dv
	case *decimal.Decimal:
		if dv == nil {
			return singleError("Not a decimal")
		}
		d = *dv
	default:
		return singleError("Not a decimal")
	}

	var v conform.Validation
	if f.gt != nil && d.Cmp(*f.gt) <= 0 {
		v.AddError(conform.NewError(fmt.Sprintf("Value not > %s", f.gt)))
	}
	if f.lt != nil && d.Cmp(*f.lt) >= 0 {
		v.AddError(conform.NewError(fmt.Sprintf("Value not < %s", f.lt)))
	}
	if f.gte != nil && d.Cmp(*f.gte) < 0 {
		v.AddError(conform.NewError(fmt.Sprintf("Value not >= %s", f.gte)))
	}
	if f.lte != nil && d.Cmp(*f.lte) > 0 {
		v.AddError(conform.NewError(fmt.Sprintf("Value not <= %s", f.lte)))
	}
	return v
}

func (f *DecimalField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("decimal").Set("description", f.description)
	if f.gt != nil {
		in["gt"] = f.gt.String()
	}
	if f.gte != nil {
		in["gte"] = f.gte.String()
	}
	if f.lt != nil {
		in["lt"] = f.lt.String()
	}
	if f.lte != nil {
		in["lte"] = f.lte.String()
	}
	return in
}

// StringField ensures that the value is a string and optionally enforces
// minimum/maximum rune lengths and a not-blank-after-trimming check.
type StringField struct {
	minLength, maxLength *int
	allowBlank           bool
	description          string
}

// String returns a field accepting strings (any string kind).
func String() *StringField { return &StringField{allowBlank: true} }

func (f *StringField) MinLength(n int) *StringField {
	f.minLength = &n
	checkLengthRange(f.minLength, f.maxLength, "String")
	return f
}

func (f *StringField) MaxLength(n int) *StringField {
	f.maxLength = &n
	checkLengthRange(f.minLength, f.maxLength, "String")
	return f
}

// DisallowBlank rejects values that are empty or whitespace-only.
func (f *StringField) DisallowBlank() *StringField {
	f.allowBlank = false
	return f
}

func (f *StringField) Description(d string) *StringField {
	f.description = d
	return f
}

func (f *StringField) Validate(value any) conform.Validation {
	s, ok := asString(value)
	if !ok {
		return singleError("Not a unicode string")
	}
	n := utf8.RuneCountInString(s)
	if f.minLength != nil && n < *f.minLength {
		return singleError(fmt.Sprintf("String must have a length of at least %d", *f.minLength))
	}
	if f.maxLength != nil && n > *f.maxLength {
		return singleError(fmt.Sprintf("String must have a length no more than %d", *f.maxLength))
	}
	if !f.allowBlank && strings.TrimSpace(s) == "" {
		return singleError("String cannot be blank")
	}
	return conform.Validation{}
}

func (f *StringField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("unicode").
		Set("description", f.description).
		Set("min_length", f.minLength).
		Set("max_length", f.maxLength)
	if !f.allowBlank {
		in["allow_blank"] = false
	}
	return in
}

func asString(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if s, ok := value.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// BytesField ensures that the value is a byte slice and optionally
// enforces minimum/maximum byte lengths.
type BytesField struct {
	minLength, maxLength *int
	description          string
}

// Bytes returns a field accepting []byte values.
func Bytes() *BytesField { return &BytesField{} }

func (f *BytesField) MinLength(n int) *BytesField {
	f.minLength = &n
	checkLengthRange(f.minLength, f.maxLength, "Bytes")
	return f
}

func (f *BytesField) MaxLength(n int) *BytesField {
	f.maxLength = &n
	checkLengthRange(f.minLength, f.maxLength, "Bytes")
	return f
}

func (f *BytesField) Description(d string) *BytesField {
	f.description = d
	return f
}

func (f *BytesField) Validate(value any) conform.Validation {
	b, ok := value.([]byte)
	if !ok {
		return singleError("Not a byte string")
	}
	if f.minLength != nil && len(b) < *f.minLength {
		return singleError(fmt.Sprintf("String must have a length of at least %d", *f.minLength))
	}
	if f.maxLength != nil && len(b) > *f.maxLength {
		return singleError(fmt.Sprintf("String must have a length no more than %d", *f.maxLength))
	}
	return conform.Validation{}
}

func (f *BytesField) Introspect() conform.Introspection {
	return conform.NewIntrospection("bytes").
		Set("description", f.description).
		Set("min_length", f.minLength).
		Set("max_length", f.maxLength)
}

// ConstantField ensures that the value exactly matches one of the
// configured constant values. Unhashable inputs are treated as
// non-members rather than faults.
type ConstantField struct {
	values      map[any]struct{}
	rendered    []string
	message     string
	description string
}

// Constant returns a field accepting exactly the given values. At least
// one value is required, and every value must be hashable.
func Constant(values ...any) *ConstantField {
	if len(values) == 0 {
		panic("fields: Constant requires at least one value")
	}
	set := make(map[any]struct{}, len(values))
	rendered := make([]string, 0, len(values))
	for _, cv := range values {
		if !isHashable(cv) {
			panic(fmt.Sprintf("fields: Constant value %v is not hashable", cv))
		}
		if _, seen := set[cv]; seen {
			continue
		}
		set[cv] = struct{}{}
		rendered = append(rendered, render(cv))
	}
	sort.Strings(rendered)

	var message string
	if len(set) == 1 {
		message = fmt.Sprintf("Value is not %s", rendered[0])
	} else {
		message = fmt.Sprintf("Value is not one of: %s", strings.Join(rendered, ", "))
	}
	return &ConstantField{values: set, rendered: rendered, message: message}
}

func (f *ConstantField) Description(d string) *ConstantField {
	f.description = d
	return f
}

func (f *ConstantField) Validate(value any) conform.Validation {
	if isHashable(value) {
		if _, ok := f.values[value]; ok {
			return conform.Validation{}
		}
	}
	return conform.Validation{Errors: []conform.Error{
		conform.NewError(f.message).WithCode(conform.ErrorCodeUnknown),
	}}
}

// Values returns the accepted values in rendered, sorted order.
func (f *ConstantField) Values() []string {
	out := make([]string, len(f.rendered))
	copy(out, f.rendered)
	return out
}

// single reports whether the field names exactly one string constant, and
// which. Dictionary uses this to treat constant key fields as named keys.
func (f *ConstantField) single() (string, bool) {
	if len(f.values) != 1 {
		return "", false
	}
	for v := range f.values {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

func (f *ConstantField) Introspect() conform.Introspection {
	values := make([]any, 0, len(f.values))
	for v := range f.values {
		switch v.(type) {
		case string, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64, nil:
			values = append(values, v)
		default:
			values = append(values, fmt.Sprintf("%v", v))
		}
	}
	sort.Slice(values, func(i, j int) bool {
		return fmt.Sprintf("%v", values[i]) < fmt.Sprintf("%v", values[j])
	})
	return conform.NewIntrospection("constant").
		Set("values", values).
		Set("description", f.description)
}

// AnythingField allows the value to be literally anything.
type AnythingField struct {
	description string
}

// Anything returns a field with no constraints.
func Anything() *AnythingField { return &AnythingField{} }

func (f *AnythingField) Description(d string) *AnythingField {
	f.description = d
	return f
}

func (f *AnythingField) Validate(any) conform.Validation { return conform.Validation{} }

func (f *AnythingField) Introspect() conform.Introspection {
	return conform.NewIntrospection("anything").Set("description", f.description)
}

// HashableField ensures that the value could be used as a map key.
type HashableField struct {
	description string
}

// Hashable returns a field accepting any comparable value.
func Hashable() *HashableField { return &HashableField{} }

func (f *HashableField) Description(d string) *HashableField {
	f.description = d
	return f
}

func (f *HashableField) Validate(value any) conform.Validation {
	if !isHashable(value) {
		return singleError("Value is not hashable")
	}
	return conform.Validation{}
}

func (f *HashableField) Introspect() conform.Introspection {
	return conform.NewIntrospection("hashable").Set("description", f.description)
}

// NullField ensures that the value is nil. Useful as a return schema for
// callables that return nothing.
type NullField struct{}

// Null returns a field accepting only nil.
func Null() *NullField { return &NullField{} }

func (f *NullField) Validate(value any) conform.Validation {
	if value != nil {
		return singleError("Value is not null")
	}
	return conform.Validation{}
}

func (f *NullField) Introspect() conform.Introspection {
	return conform.NewIntrospection("null")
}

// DecimalStringField ensures that the value is a string that parses as a
// decimal.
type DecimalStringField struct {
	description string
}

// DecimalString returns a field accepting decimal-formatted strings.
func DecimalString() *DecimalStringField { return &DecimalStringField{} }

func (f *DecimalStringField) Description(d string) *DecimalStringField {
	f.description = d
	return f
}

func (f *DecimalStringField) Validate(value any) conform.Validation {
	s, ok := asString(value)
	if !ok {
		return singleError("Invalid decimal value (not unicode string)")
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return singleError("Invalid decimal value (parse error)")
	}
	return conform.Validation{}
}

func (f *DecimalStringField) Introspect() conform.Introspection {
	return conform.NewIntrospection("unicode_decimal").Set("description", f.description)
}
