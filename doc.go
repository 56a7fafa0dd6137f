// Package conform is a declarative schema-validation library: composable
// field objects describe the shape of data (dictionaries, lists, tuples,
// scalars, unions, polymorphic variants) and validate arbitrary runtime
// values against those descriptions, producing structured errors and
// warnings with location pointers plus a machine-readable introspection
// document describing the schema itself.
//
// This package holds the result vocabulary (Error, Warning, Validation),
// the Field contract, and the validate-and-raise collaborator surface.
// Field implementations live in the fields subpackage; schemaconv builds
// field trees from YAML/JSON schema documents; settings layers
// defaults-merging on top of a Dictionary schema.
//
// Validation is a pure, synchronous tree walk: a schema tree is built
// once, then Validate may be called from any number of goroutines with no
// locking.
package conform
