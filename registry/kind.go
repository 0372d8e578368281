package registry

// Kind is the closed set of value and container categories.
type Kind uint8

const (
	Invalid Kind = iota

	// Primitive kinds.

	Boolean
	Integer
	Float
	String
	Bytes

	// Container kinds.

	List
	Tuple
	Set
	FrozenSet
	Map
)

// KindNames holds the canonical name of every kind. Canonical names are also
// registered as aliases and are used as keys in registry configuration.
var KindNames = map[Kind]string{
	Boolean:   "boolean",
	Integer:   "integer",
	Float:     "floating_point",
	String:    "string",
	Bytes:     "bytes",
	List:      "list",
	Tuple:     "tuple",
	Set:       "set",
	FrozenSet: "frozenset",
	Map:       "dictionary",
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{Boolean, Integer, Float, String, Bytes, List, Tuple, Set, FrozenSet, Map}
}

func (k Kind) IsPrimitive() bool { return k >= Boolean && k <= Bytes }

func (k Kind) IsContainer() bool { return k >= List && k <= Map }

// IsSet reports whether items of k are unordered and distinct.
func (k Kind) IsSet() bool { return k == Set || k == FrozenSet }

func (k Kind) String() string {
	if n, ok := KindNames[k]; ok {
		return n
	}
	return "invalid"
}

// ParseKindName returns the kind with canonical name n.
func ParseKindName(n string) (Kind, bool) {
	for k, name := range KindNames {
		if name == n {
			return k, true
		}
	}
	return Invalid, false
}
