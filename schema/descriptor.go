package schema

import (
	"strings"

	"forme.dev/groups/registry"
)

// Descriptor is the parsed form of a field's declared type. It is one of
// Primitive, ContainerExpr or SchemaRef.
type Descriptor interface {
	String() string
	descriptor()
}

// Primitive is a bare type token, such as "str" or "integer".
type Primitive struct {
	Alias string
}

// ContainerExpr is a bracketed expression such as "list[str]". Alias is empty
// for an anonymous bracket group, as in the inner braces of
// "frozenset({str})". Kind is Invalid when Alias does not name a container.
type ContainerExpr struct {
	Alias string
	Kind  registry.Kind
	Open  string
	Close string
	Elems []Descriptor
}

// SchemaRef is a nested schema, written "schema" or "schema:<name>", or an
// embedded *Schema.
type SchemaRef struct {
	Name   string
	Schema *Schema
}

func (Primitive) descriptor()     {}
func (ContainerExpr) descriptor() {}
func (SchemaRef) descriptor()     {}

func (p Primitive) String() string { return p.Alias }

func (c ContainerExpr) String() string {
	parts := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		parts[i] = e.String()
	}
	return c.Alias + c.Open + strings.Join(parts, ", ") + c.Close
}

func (r SchemaRef) String() string {
	if r.Name == "" {
		return schemaMarker
	}
	return schemaMarker + ":" + r.Name
}

const schemaMarker = "schema"

// isSchemaToken reports whether tok is the schema marker, bare or with a
// name.
func isSchemaToken(tok string) (name string, ok bool) {
	if tok == schemaMarker {
		return "", true
	}
	if strings.HasPrefix(tok, schemaMarker+":") {
		return strings.TrimPrefix(tok, schemaMarker+":"), true
	}
	return "", false
}
