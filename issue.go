package conform

// Error codes. The set is closed: every Error carries exactly one of these.
const (
	ErrorCodeInvalid = "INVALID" // value present but of the wrong type/shape/value
	ErrorCodeMissing = "MISSING" // required structural member absent
	ErrorCodeUnknown = "UNKNOWN" // structural surprise: extra keys, unresolvable references
)

// Warning codes. Warnings never affect validity.
const (
	WarningCodeWarning                = "WARNING"
	WarningCodeFieldDeprecated        = "FIELD_DEPRECATED"
	WarningCodeFieldDeprecatedRenamed = "FIELD_DEPRECATED_RENAMED"
	WarningCodeFieldDeprecatedRemoved = "FIELD_DEPRECATED_REMOVED"
)

// Issue is something found while validating a value: a human-readable
// message plus an optional pointer locating the issue within a nested value
// (dotted keys and stringified indices, e.g. "address.line1" or "items.3").
// A pointer is only ever extended by prefixing as it bubbles up through
// enclosing container fields.
type Issue struct {
	Message string
	Pointer string
}

func (i Issue) prefixed(pointer string) Issue {
	i.Pointer = JoinPointer(pointer, i.Pointer)
	return i
}

// Error is an Issue that blocks validity.
type Error struct {
	Issue
	Code string
}

// NewError returns an Error with the default INVALID code and no pointer.
func NewError(message string) Error {
	return Error{Issue: Issue{Message: message}, Code: ErrorCodeInvalid}
}

// WithCode returns a copy of the error carrying the given code.
func (e Error) WithCode(code string) Error {
	e.Code = code
	return e
}

// At returns a copy of the error pointed at the given location.
func (e Error) At(pointer string) Error {
	e.Pointer = pointer
	return e
}

// Warning is an informational Issue; it never blocks validity.
type Warning struct {
	Issue
	Code string
}

// NewWarning returns a Warning with the generic WARNING code.
func NewWarning(message string) Warning {
	return Warning{Issue: Issue{Message: message}, Code: WarningCodeWarning}
}

// WithCode returns a copy of the warning carrying the given code.
func (w Warning) WithCode(code string) Warning {
	w.Code = code
	return w
}

// Validation is the aggregate result of one validate call. Both slices are
// insertion-ordered; duplicates are allowed and never deduplicated.
type Validation struct {
	Errors   []Error
	Warnings []Warning
}

// IsValid reports whether the validation collected zero errors. Warnings
// have no bearing on validity.
func (v Validation) IsValid() bool { return len(v.Errors) == 0 }

// AddError appends an error.
func (v *Validation) AddError(e Error) { v.Errors = append(v.Errors, e) }

// AddWarning appends a warning.
func (v *Validation) AddWarning(w Warning) { v.Warnings = append(v.Warnings, w) }

// Extend appends another validation's errors and warnings into this one,
// prefixing each issue's pointer with the given segment. Pass "" to append
// without re-pointing. Prefixing composes associatively: extending with "p"
// into a result later extended with "q" yields pointers "q.p.<original>".
func (v *Validation) Extend(other Validation, pointer string) {
	if pointer == "" {
		v.Errors = append(v.Errors, other.Errors...)
		v.Warnings = append(v.Warnings, other.Warnings...)
		return
	}
	for _, e := range other.Errors {
		e.Issue = e.Issue.prefixed(pointer)
		v.Errors = append(v.Errors, e)
	}
	for _, w := range other.Warnings {
		w.Issue = w.Issue.prefixed(pointer)
		v.Warnings = append(v.Warnings, w)
	}
}
