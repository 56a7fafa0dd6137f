package fields

import (
	"cmp"
	"fmt"
	"math"
	"reflect"

	conform "github.com/reifylabs/conform"
)

// bounds holds the four optional comparator bounds shared by ordered leaf
// fields. Every configured bound is checked independently so that a value
// violating several bounds reports each violation.
type bounds[T cmp.Ordered] struct {
	gt, gte, lt, lte *T
}

func (b bounds[T]) check(value T) []conform.Error {
	var errs []conform.Error
	if b.gt != nil && value <= *b.gt {
		errs = append(errs, conform.NewError(fmt.Sprintf("Value not > %v", *b.gt)))
	}
	if b.lt != nil && value >= *b.lt {
		errs = append(errs, conform.NewError(fmt.Sprintf("Value not < %v", *b.lt)))
	}
	if b.gte != nil && value < *b.gte {
		errs = append(errs, conform.NewError(fmt.Sprintf("Value not >= %v", *b.gte)))
	}
	if b.lte != nil && value > *b.lte {
		errs = append(errs, conform.NewError(fmt.Sprintf("Value not <= %v", *b.lte)))
	}
	return errs
}

func (b bounds[T]) introspect(in conform.Introspection) {
	in.Set("gt", b.gt)
	in.Set("gte", b.gte)
	in.Set("lt", b.lt)
	in.Set("lte", b.lte)
}

// asInt64 admits every Go integer kind, including named types. A uint64
// beyond math.MaxInt64 is rejected rather than wrapped.
func asInt64(value any) (int64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

// asFloat64 admits floats and, like the original numeric tower, integers.
func asFloat64(value any) (float64, bool) {
	if n, ok := asInt64(value); ok {
		return float64(n), true
	}
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// isHashable reports whether the value could be used as a map key.
func isHashable(value any) bool {
	if value == nil {
		return true
	}
	return reflect.ValueOf(value).Comparable()
}

// render produces the pointer/message representation of an arbitrary
// value: strings are quoted, everything else prints with %v.
func render(value any) string {
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", value)
}

func checkLengthRange(min, max *int, what string) {
	if min != nil && max != nil && *min > *max {
		panic(fmt.Sprintf("fields: min_length cannot be greater than max_length in %s", what))
	}
}

func singleError(message string) conform.Validation {
	return conform.Validation{Errors: []conform.Error{conform.NewError(message)}}
}
