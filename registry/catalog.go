package registry

import (
	"reflect"

	"forme.dev/groups/shape"
)

// Spec is the static description of one kind.
type Spec struct {
	Kind    Kind
	Aliases []string
	// Reserved is a marker unique to the kind. It is never accepted as an
	// alias and is hashed as the kind tag of a container.
	Reserved string
	// Open, Close and Separator describe the bracket syntax used in textual
	// type expressions. Primitive kinds leave them empty.
	Open      string
	Close     string
	Separator string
	// Rep is the Go type that natively represents the kind.
	Rep reflect.Type
}

func (s Spec) clone() Spec {
	s.Aliases = append([]string(nil), s.Aliases...)
	return s
}

// DefaultOverlaps lists aliases that are substrings of another kind's alias
// and are nonetheless accepted: "int" occurs in "FloatingPoint" and "set"
// occurs in "frozenset". Resolution is by exact match, so these never
// resolve ambiguously.
var DefaultOverlaps = []string{
	"int", "INT", "int_type", "INT_TYPE",
	"Set", "set", "SET", "SetType", "set_type", "SET_TYPE",
}

// ReservedWords may not be used as aliases by any kind.
var ReservedWords = []string{"schema"}

func defaultSpecs() []Spec {
	return []Spec{
		{
			Kind: Boolean,
			Aliases: []string{
				"Boolean", "boolean", "BOOLEAN",
				"Bool", "bool", "BOOL",
				"BooleanType", "boolean_type", "BOOLEAN_TYPE",
				"BoolType", "bool_type", "BOOL_TYPE",
			},
			Reserved: "__SYSTEM_RESERVED_BOOL__",
			Rep:      reflect.TypeOf(false),
		},
		{
			Kind: Integer,
			Aliases: []string{
				"Integer", "integer", "INTEGER",
				"Int", "int", "INT",
				"IntegerType", "integer_type", "INTEGER_TYPE",
				"IntType", "int_type", "INT_TYPE",
			},
			Reserved: "__SYSTEM_RESERVED_INT__",
			Rep:      reflect.TypeOf(int64(0)),
		},
		{
			Kind: Float,
			Aliases: []string{
				"FloatingPoint", "floating_point", "FLOATING_POINT",
				"Float", "float", "FLOAT",
				"FloatingPointType", "floating_point_type", "FLOATING_POINT_TYPE",
				"FloatType", "float_type", "FLOAT_TYPE",
				"Number", "number", "NUMBER",
				"NumberType", "number_type", "NUMBER_TYPE",
			},
			Reserved: "__SYSTEM_RESERVED_FLOAT__",
			Rep:      reflect.TypeOf(float64(0)),
		},
		{
			Kind: String,
			Aliases: []string{
				"String", "string", "STRING",
				"Str", "str", "STR",
				"StringType", "string_type", "STRING_TYPE",
				"StrType", "str_type", "STR_TYPE",
			},
			Reserved: "__SYSTEM_RESERVED_STR__",
			Rep:      reflect.TypeOf(""),
		},
		{
			Kind: Bytes,
			Aliases: []string{
				"Bytes", "bytes", "BYTES",
				"Byte", "byte", "BYTE",
				"BytesType", "bytes_type", "BYTES_TYPE",
				"ByteType", "byte_type", "BYTE_TYPE",
			},
			Reserved: "__SYSTEM_RESERVED_BYTES__",
			Rep:      reflect.TypeOf([]byte(nil)),
		},
		{
			Kind: List,
			Aliases: []string{
				"List", "list", "LIST",
				"ListType", "list_type", "LIST_TYPE",
			},
			Reserved:  "__SYSTEM_RESERVED_LIST__",
			Open:      "[",
			Close:     "]",
			Separator: ",",
			Rep:       reflect.TypeOf([]any(nil)),
		},
		{
			Kind: Tuple,
			Aliases: []string{
				"Tuple", "tuple", "TUPLE",
				"TupleType", "tuple_type", "TUPLE_TYPE",
			},
			Reserved:  "__SYSTEM_RESERVED_TUPLE__",
			Open:      "(",
			Close:     ")",
			Separator: ",",
			Rep:       reflect.TypeOf(shape.Tuple(nil)),
		},
		{
			Kind: Set,
			Aliases: []string{
				"Set", "set", "SET",
				"SetType", "set_type", "SET_TYPE",
			},
			Reserved:  "__SYSTEM_RESERVED_SET__",
			Open:      "{",
			Close:     "}",
			Separator: ",",
			Rep:       reflect.TypeOf(shape.Set(nil)),
		},
		{
			Kind: FrozenSet,
			Aliases: []string{
				"FrozenSet", "frozenset", "FROZENSET",
				"FrozenSetType", "frozenset_type", "FROZENSET_TYPE",
			},
			Reserved:  "__SYSTEM_RESERVED_FROZENSET__",
			Open:      "{",
			Close:     "}",
			Separator: ",",
			Rep:       reflect.TypeOf(shape.FrozenSet(nil)),
		},
		{
			Kind: Map,
			Aliases: []string{
				"Dictionary", "dictionary", "DICTIONARY",
				"Dict", "dict", "DICT",
				"DictType", "dict_type", "DICT_TYPE",
				"Map", "map", "MAP",
				"MapType", "map_type", "MAP_TYPE",
			},
			Reserved:  "__SYSTEM_RESERVED_DICT__",
			Open:      "{",
			Close:     "}",
			Separator: ",",
			Rep:       reflect.TypeOf(shape.Map(nil)),
		},
	}
}
