package schema

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"forme.dev/groups/errs"
	"forme.dev/groups/registry"
)

type exprAST struct {
	Alias string    `parser:"  @Ident"`
	Args  *groupAST `parser:"  @@?"`
	Group *groupAST `parser:"| @@"`
}

type groupAST struct {
	Open  string     `parser:"@Open"`
	Elems []*exprAST `parser:"@@ ( Comma @@ )*"`
	Close string     `parser:"@Close"`
}

// Parser turns type expressions into Descriptors. Bracket characters are
// taken from the registry, so any kind's brackets may wrap any container
// alias as long as each group opens and closes with a matching pair.
type Parser struct {
	reg   *registry.Registry
	pairs map[string]string
	p     *participle.Parser[exprAST]
}

// NewParser builds a parser for the bracket syntax declared in reg.
func NewParser(reg *registry.Registry) (*Parser, error) {
	def, err := lexer.New(lexer.Rules{"Root": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*(?::[A-Za-z0-9_.\-]*)?`},
		{Name: "Open", Pattern: charClass(reg.OpenBrackets())},
		{Name: "Close", Pattern: charClass(reg.CloseBrackets())},
		{Name: "Comma", Pattern: `,`},
	}})
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "GRP-SCHEMA-900", "failed to build type lexer: "+err.Error(), err)
	}
	p, err := participle.Build[exprAST](
		participle.Lexer(def),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "GRP-SCHEMA-900", "failed to build type parser: "+err.Error(), err)
	}

	pairs := map[string]string{}
	for _, k := range registry.Kinds() {
		s, _ := reg.Spec(k)
		if s.Open != "" {
			pairs[s.Open] = s.Close
		}
	}
	return &Parser{reg: reg, pairs: pairs, p: p}, nil
}

func charClass(chars []string) string {
	var b strings.Builder
	b.WriteString("[")
	for _, c := range chars {
		b.WriteString(regexp.QuoteMeta(c))
	}
	b.WriteString("]")
	return b.String()
}

var parsers sync.Map // *registry.Registry -> *Parser

// ParserFor returns a cached parser for reg.
func ParserFor(reg *registry.Registry) (*Parser, error) {
	if v, ok := parsers.Load(reg); ok {
		return v.(*Parser), nil
	}
	p, err := NewParser(reg)
	if err != nil {
		return nil, err
	}
	v, _ := parsers.LoadOrStore(reg, p)
	return v.(*Parser), nil
}

// ParseType parses a single type expression.
func (p *Parser) ParseType(expr string) (Descriptor, error) {
	ast, err := p.p.ParseString("", expr)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, "GRP-SCHEMA-001", fmt.Sprintf("malformed type expression %q: %v", expr, err), err)
	}
	d, err := p.convert(ast)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, "GRP-SCHEMA-001", fmt.Sprintf("malformed type expression %q: %v", expr, err), err)
	}
	return d, nil
}

func (p *Parser) convert(a *exprAST) (Descriptor, error) {
	switch {
	case a.Group != nil:
		return p.group("", a.Group)
	case a.Args != nil:
		return p.group(a.Alias, a.Args)
	}
	if name, ok := isSchemaToken(a.Alias); ok {
		return SchemaRef{Name: name}, nil
	}
	return Primitive{Alias: a.Alias}, nil
}

func (p *Parser) group(alias string, g *groupAST) (Descriptor, error) {
	if want := p.pairs[g.Open]; want != g.Close {
		return nil, fmt.Errorf("%q opened with %q is closed with %q", alias, g.Open, g.Close)
	}
	c := ContainerExpr{Alias: alias, Open: g.Open, Close: g.Close}
	if alias != "" {
		if k, err := p.reg.ResolveContainer(alias); err == nil {
			c.Kind = k
		}
	}
	for _, e := range g.Elems {
		d, err := p.convert(e)
		if err != nil {
			return nil, err
		}
		c.Elems = append(c.Elems, d)
	}
	return c, nil
}

// ParseType parses expr with the cached parser for reg.
func ParseType(reg *registry.Registry, expr string) (Descriptor, error) {
	p, err := ParserFor(reg)
	if err != nil {
		return nil, err
	}
	return p.ParseType(expr)
}
