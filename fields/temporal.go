package fields

import (
	"fmt"
	"time"

	conform "github.com/reifylabs/conform"
)

// TimeField ensures that the value is a time.Time and optionally enforces
// gt/gte/lt/lte boundaries. Bounds are time.Time values themselves, so a
// bound of the wrong temporal kind is impossible to construct.
type TimeField struct {
	gt, gte, lt, lte *time.Time
	description      string
}

// Time returns a field accepting time.Time values.
func Time() *TimeField { return &TimeField{} }

func (f *TimeField) Gt(v time.Time) *TimeField  { f.gt = &v; return f }
func (f *TimeField) Gte(v time.Time) *TimeField { f.gte = &v; return f }
func (f *TimeField) Lt(v time.Time) *TimeField  { f.lt = &v; return f }
func (f *TimeField) Lte(v time.Time) *TimeField { f.lte = &v; return f }
func (f *TimeField) Description(d string) *TimeField {
	f.description = d
	return f
}

func (f *TimeField) Validate(value any) conform.Validation {
	t, ok := value.(time.Time)
	if !ok {
		return singleError("Not a time.Time instance")
	}
	var v conform.Validation
	if f.gt != nil && !t.After(*f.gt) {
		v.AddError(conform.NewError(fmt.Sprintf("Value not > %s", f.gt.Format(time.RFC3339))))
	}
	if f.lt != nil && !t.Before(*f.lt) {
		v.AddError(conform.NewError(fmt.Sprintf("Value not < %s", f.lt.Format(time.RFC3339))))
	}
	if f.gte != nil && t.Before(*f.gte) {
		v.AddError(conform.NewError(fmt.Sprintf("Value not >= %s", f.gte.Format(time.RFC3339))))
	}
	if f.lte != nil && t.After(*f.lte) {
		v.AddError(conform.NewError(fmt.Sprintf("Value not <= %s", f.lte.Format(time.RFC3339))))
	}
	return v
}

func (f *TimeField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("datetime").Set("description", f.description)
	if f.gt != nil {
		in["gt"] = f.gt.Format(time.RFC3339)
	}
	if f.gte != nil {
		in["gte"] = f.gte.Format(time.RFC3339)
	}
	if f.lt != nil {
		in["lt"] = f.lt.Format(time.RFC3339)
	}
	if f.lte != nil {
		in["lte"] = f.lte.Format(time.RFC3339)
	}
	return in
}

// DurationField ensures that the value is a time.Duration and optionally
// enforces gt/gte/lt/lte boundaries.
type DurationField struct {
	bounds      bounds[time.Duration]
	description string
}

// Duration returns a field accepting time.Duration values.
func Duration() *DurationField { return &DurationField{} }

func (f *DurationField) Gt(v time.Duration) *DurationField  { f.bounds.gt = &v; return f }
func (f *DurationField) Gte(v time.Duration) *DurationField { f.bounds.gte = &v; return f }
func (f *DurationField) Lt(v time.Duration) *DurationField  { f.bounds.lt = &v; return f }
func (f *DurationField) Lte(v time.Duration) *DurationField { f.bounds.lte = &v; return f }
func (f *DurationField) Description(d string) *DurationField {
	f.description = d
	return f
}

func (f *DurationField) Validate(value any) conform.Validation {
	d, ok := value.(time.Duration)
	if !ok {
		return singleError("Not a time.Duration instance")
	}
	return conform.Validation{Errors: f.bounds.check(d)}
}

func (f *DurationField) Introspect() conform.Introspection {
	in := conform.NewIntrospection("timedelta").Set("description", f.description)
	if f.bounds.gt != nil {
		in["gt"] = f.bounds.gt.String()
	}
	if f.bounds.gte != nil {
		in["gte"] = f.bounds.gte.String()
	}
	if f.bounds.lt != nil {
		in["lt"] = f.bounds.lt.String()
	}
	if f.bounds.lte != nil {
		in["lte"] = f.bounds.lte.String()
	}
	return in
}
