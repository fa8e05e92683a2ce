// Package engine computes per-user marketplace recommendations from an
// in-memory snapshot of the user, purchase, and listing relations.
package engine

import "strings"

// Key is the canonical matching form of an item identifier. Keys are used
// only for cross-relation matching, never for display.
type Key string

// Normalize canonicalizes a raw item identifier: leading and trailing
// whitespace is trimmed, then the result is lowercased. An input that is
// empty after trimming yields the empty key, which never matches a listing.
func Normalize(raw string) Key {
	return Key(strings.ToLower(strings.TrimSpace(raw)))
}
