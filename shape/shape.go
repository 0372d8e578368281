// Package shape defines the native collection shapes that containers are
// built from and repackaged into.
//
// An ordered list is a plain []any. The remaining shapes are distinct named
// types so that a source's shape alone identifies its container kind.
package shape

// Tuple is a fixed, ordered sequence.
type Tuple []any

// Set is an unordered collection of distinct scalars. Enumeration order is
// not significant.
type Set []any

// FrozenSet is an immutable Set.
type FrozenSet []any

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   any
	Value any
}

// Map is an insertion-ordered mapping.
type Map []Pair

// Keys returns the keys in insertion order.
func (m Map) Keys() []any {
	out := make([]any, len(m))
	for i, p := range m {
		out[i] = p.Key
	}
	return out
}

// Get returns the value of the first entry whose key equals key. Keys must
// be comparable for a match; []byte keys never match.
func (m Map) Get(key any) (any, bool) {
	for _, p := range m {
		if comparableEqual(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
