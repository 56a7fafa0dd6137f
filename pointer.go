package conform

import (
	"strconv"
	"strings"
)

// Pointer path syntax: dotted segments for mapping keys, stringified
// integers for sequence indices ("a.b.3"). Set elements, which have no
// stable position, use their bracketed rendered value ("[v]").

// JoinPointer prefixes pointer with the given segment. Either side may be
// empty, in which case the other is returned unchanged.
func JoinPointer(prefix, pointer string) string {
	if pointer == "" {
		return prefix
	}
	if prefix == "" {
		return pointer
	}
	return prefix + "." + pointer
}

// IndexPointer renders a sequence index as a pointer segment.
func IndexPointer(i int) string { return strconv.Itoa(i) }

// SplitPointer splits a pointer into its segments. Consumers treat every
// segment as either a key name or an index. Splitting an empty pointer
// yields no segments.
func SplitPointer(pointer string) []string {
	if pointer == "" {
		return nil
	}
	return strings.Split(pointer, ".")
}
