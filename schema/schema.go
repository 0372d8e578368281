// Package schema declares named, typed fields and verifies that every type
// expression reduces to primitive kinds known to a registry.
//
// A field type is a type expression string ("list[dict[str, str]]",
// "schema:address"), an embedded *Schema, or a Descriptor. Schemas are not
// validated at construction and have no hash identity.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"forme.dev/groups/errs"
	"forme.dev/groups/registry"
)

// Field is one named entry of a Schema.
type Field struct {
	Name string
	Type any
}

// Schema is an ordered set of fields.
type Schema struct {
	fields []Field
}

// New returns a schema with fields in the given order.
func New(fields ...Field) *Schema {
	return &Schema{fields: append([]Field(nil), fields...)}
}

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

func (s *Schema) Len() int { return len(s.fields) }

// Lookup returns the type of the first field called name.
func (s *Schema) Lookup(name string) (any, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Verify reports whether every field's type reduces to valid leaf tokens. On
// failure the message names every invalid token across all fields.
func (s *Schema) Verify(reg *registry.Registry) (bool, string) {
	if err := s.VerifyErr(reg); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// VerifyErr is like Verify but returns the problems as an aggregated error.
// Each problem is an *errs.Error of KindUnknownAlias or KindParse.
func (s *Schema) VerifyErr(reg *registry.Registry) error {
	p, err := ParserFor(reg)
	if err != nil {
		return err
	}
	w := &walker{
		reg:      reg,
		parser:   p,
		visited:  map[*Schema]bool{},
		leaves:   map[string]bool{},
		problems: map[string]error{},
	}
	w.schema(s)
	for tok := range w.leaves {
		if _, ok := isSchemaToken(tok); ok {
			continue
		}
		if _, err := reg.ResolvePrimitive(tok); err != nil {
			w.problem(errs.New(errs.KindUnknownAlias, "GRP-SCHEMA-002", fmt.Sprintf("type %q is not valid", tok)))
		}
	}
	return w.result()
}

// Leaves returns the distinct leaf tokens of s, sorted. The schema marker
// appears as "schema". Malformed expressions contribute no leaves.
func (s *Schema) Leaves(reg *registry.Registry) ([]string, error) {
	p, err := ParserFor(reg)
	if err != nil {
		return nil, err
	}
	w := &walker{reg: reg, parser: p, visited: map[*Schema]bool{}, leaves: map[string]bool{}, problems: map[string]error{}}
	w.schema(s)
	out := make([]string, 0, len(w.leaves))
	for tok := range w.leaves {
		if _, ok := isSchemaToken(tok); ok {
			tok = schemaMarker
		}
		out = append(out, tok)
	}
	sort.Strings(out)
	return dedupSorted(out), nil
}

type walker struct {
	reg      *registry.Registry
	parser   *Parser
	visited  map[*Schema]bool
	leaves   map[string]bool
	problems map[string]error
}

func (w *walker) problem(err error) {
	w.problems[err.Error()] = err
}

func (w *walker) schema(s *Schema) {
	if s == nil || w.visited[s] {
		return
	}
	w.visited[s] = true
	for _, f := range s.fields {
		w.field(f)
	}
}

func (w *walker) field(f Field) {
	switch t := f.Type.(type) {
	case string:
		d, err := w.parser.ParseType(t)
		if err != nil {
			w.problem(err)
			return
		}
		w.descriptor(d)
	case *Schema:
		w.leaves[schemaMarker] = true
		w.schema(t)
	case Schema:
		w.leaves[schemaMarker] = true
		w.schema(&t)
	case Descriptor:
		w.descriptor(t)
	default:
		w.problem(errs.New(errs.KindParse, "GRP-SCHEMA-003", fmt.Sprintf("field %q has unsupported type declaration %T", f.Name, f.Type)))
	}
}

func (w *walker) descriptor(d Descriptor) {
	switch t := d.(type) {
	case Primitive:
		w.leaves[t.Alias] = true
	case SchemaRef:
		w.leaves[schemaMarker] = true
		w.schema(t.Schema)
	case ContainerExpr:
		if t.Alias != "" {
			if _, err := w.reg.ResolveContainer(t.Alias); err != nil {
				w.problem(errs.New(errs.KindUnknownAlias, "GRP-SCHEMA-004", fmt.Sprintf("container type %q is not valid", t.Alias)))
			}
		}
		for _, e := range t.Elems {
			w.descriptor(e)
		}
	}
}

func (w *walker) result() error {
	if len(w.problems) == 0 {
		return nil
	}
	keys := make([]string, 0, len(w.problems))
	for k := range w.problems {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var result *multierror.Error
	for _, k := range keys {
		result = multierror.Append(result, w.problems[k])
	}
	result.ErrorFormat = func(es []error) string {
		msgs := make([]string, len(es))
		for i, e := range es {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return result
}

func dedupSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == in[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
