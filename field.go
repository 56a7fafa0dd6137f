package conform

// Field is a composable schema node: it validates an arbitrary runtime
// value and describes its own configuration.
//
// Implementations are immutable once published: configuration is fixed at
// construction time and Validate holds no per-call state, so a single field
// instance is safe for unsynchronized concurrent use. Validate never panics
// for invalid input; misconfigured fields fail at construction time
// instead.
type Field interface {
	// Validate checks the value and returns every error and warning found.
	Validate(value any) Validation

	// Introspect returns a JSON-safe description of the field's
	// configuration, independent of any particular value. It always
	// includes a "type" discriminator and omits absent optional keys.
	Introspect() Introspection
}

// Errors is a convenience projection of Validate.
func Errors(f Field, value any) []Error { return f.Validate(value).Errors }

// Warnings is a convenience projection of Validate.
func Warnings(f Field, value any) []Warning { return f.Validate(value).Warnings }
