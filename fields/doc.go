// Package fields provides every schema node of the conform library:
// scalar leaves (Boolean, Integer, Float, Decimal, String, Bytes,
// Constant, ...), collection fields (List, Sequence, Set, Tuple,
// SchemalessDictionary), the Dictionary field with constant and variable
// keys, boolean combinators (Any, All, Chain), runtime dispatch
// (Polymorph), modifiers (Nullable, Optional, Deprecated), and
// resolver-backed reference fields (SymbolPath).
//
// Fields are built with constructor functions and chainable setters:
//
//	schema := fields.Dictionary().
//		Key("name", fields.String().MinLength(1)).
//		Key("port", fields.Integer().Gt(0).Lte(65535)).
//		OptionalKeys("port")
//
// Configuration is fixed once the tree is published; setters must not be
// called after Validate is in use. Misconfiguration (empty combinators,
// nil children, inverted length ranges) panics at construction time so
// that schema definition errors surface as early as possible.
package fields
