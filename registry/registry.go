// Package registry implements the canonical type registry: the closed set of
// primitive and container kinds, their aliases and bracket syntax, alias
// resolution, and kind inference for native Go values.
//
// A Registry is validated once, eagerly, by New and is read-only afterwards,
// so a single instance may be shared by any number of goroutines.
package registry

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"sync"

	"forme.dev/groups/errs"
)

// Registry is an immutable, validated catalog of kinds.
type Registry struct {
	specs    map[Kind]*Spec
	overlaps map[string]bool
	byAlias  map[string]Kind
	byRep    map[reflect.Type]Kind
}

// Option customizes a Registry before validation.
type Option func(*Registry) error

// WithAliases adds aliases to kind k.
func WithAliases(k Kind, aliases ...string) Option {
	return func(r *Registry) error {
		s, ok := r.specs[k]
		if !ok {
			return errs.New(errs.KindConfig, "GRP-CFG-002", fmt.Sprintf("unknown kind %d", k))
		}
		s.Aliases = append(s.Aliases, aliases...)
		return nil
	}
}

// WithOverlap whitelists aliases that may occur as substrings of another
// kind's alias.
func WithOverlap(aliases ...string) Option {
	return func(r *Registry) error {
		for _, a := range aliases {
			r.overlaps[a] = true
		}
		return nil
	}
}

// WithRepresentation replaces the native Go type of kind k.
func WithRepresentation(k Kind, rep reflect.Type) Option {
	return func(r *Registry) error {
		s, ok := r.specs[k]
		if !ok {
			return errs.New(errs.KindConfig, "GRP-CFG-002", fmt.Sprintf("unknown kind %d", k))
		}
		s.Rep = rep
		return nil
	}
}

// WithSpec replaces the spec of s.Kind wholesale.
func WithSpec(s Spec) Option {
	return func(r *Registry) error {
		if _, ok := KindNames[s.Kind]; !ok {
			return errs.New(errs.KindConfig, "GRP-CFG-002", fmt.Sprintf("unknown kind %d", s.Kind))
		}
		c := s.clone()
		r.specs[s.Kind] = &c
		return nil
	}
}

// New builds a registry from the default catalog and opts, then validates it.
// A registry that fails validation is never returned.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		specs:    make(map[Kind]*Spec),
		overlaps: make(map[string]bool),
	}
	for _, s := range defaultSpecs() {
		s := s
		r.specs[s.Kind] = &s
	}
	for _, a := range DefaultOverlaps {
		r.overlaps[a] = true
	}
	for _, o := range opts {
		if err := o(r); err != nil {
			return nil, err
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	r.byAlias = make(map[string]Kind)
	r.byRep = make(map[reflect.Type]Kind)
	for _, k := range Kinds() {
		s := r.specs[k]
		for _, a := range s.Aliases {
			r.byAlias[a] = k
		}
		r.byRep[s.Rep] = k
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the default catalog. It is built
// on first use and shared afterwards.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = MustNew() })
	return defaultReg
}

// Spec returns a copy of the spec for k.
func (r *Registry) Spec(k Kind) (Spec, bool) {
	s, ok := r.specs[k]
	if !ok {
		return Spec{}, false
	}
	return s.clone(), true
}

// Reserved returns the reserved marker of k.
func (r *Registry) Reserved(k Kind) string {
	if s, ok := r.specs[k]; ok {
		return s.Reserved
	}
	return ""
}

// Aliases returns every registered alias, sorted.
func (r *Registry) Aliases() []string {
	out := make([]string, 0, len(r.byAlias))
	for a := range r.byAlias {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Resolve maps an alias to its kind by exact string equality.
func (r *Registry) Resolve(alias string) (Kind, error) {
	if k, ok := r.byAlias[alias]; ok {
		return k, nil
	}
	return Invalid, errs.New(errs.KindUnknownAlias, "GRP-ALIAS-001", fmt.Sprintf("unknown type alias %q", alias))
}

// ResolvePrimitive is like Resolve but requires a primitive kind.
func (r *Registry) ResolvePrimitive(alias string) (Kind, error) {
	k, err := r.Resolve(alias)
	if err != nil {
		return Invalid, err
	}
	if !k.IsPrimitive() {
		return Invalid, errs.New(errs.KindUnknownAlias, "GRP-ALIAS-002", fmt.Sprintf("alias %q names container kind %s, not a primitive", alias, k))
	}
	return k, nil
}

// ResolveContainer is like Resolve but requires a container kind.
func (r *Registry) ResolveContainer(alias string) (Kind, error) {
	k, err := r.Resolve(alias)
	if err != nil {
		return Invalid, err
	}
	if !k.IsContainer() {
		return Invalid, errs.New(errs.KindUnknownAlias, "GRP-ALIAS-003", fmt.Sprintf("alias %q names primitive kind %s, not a container", alias, k))
	}
	return k, nil
}

// OpenBrackets returns the distinct opening bracket characters of all
// container kinds, sorted.
func (r *Registry) OpenBrackets() []string {
	return r.brackets(func(s *Spec) string { return s.Open })
}

// CloseBrackets returns the distinct closing bracket characters of all
// container kinds, sorted.
func (r *Registry) CloseBrackets() []string {
	return r.brackets(func(s *Spec) string { return s.Close })
}

func (r *Registry) brackets(pick func(*Spec) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, k := range Kinds() {
		b := pick(r.specs[k])
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// Infer determines the primitive kind of raw and returns raw normalized to
// that kind's representation: Go integer types become int64 and float32
// becomes float64.
func (r *Registry) Infer(raw any) (Kind, any, error) {
	norm, err := normalize(raw)
	if err != nil {
		return Invalid, nil, err
	}
	if norm == nil {
		return Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-001", "nil is not a supported primitive")
	}
	k, ok := r.byRep[reflect.TypeOf(norm)]
	if !ok {
		if isCollection(raw) {
			return Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-002", fmt.Sprintf("expected a scalar, got container shape %T", raw))
		}
		return Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-001", fmt.Sprintf("unsupported primitive type %T", raw))
	}
	if k.IsContainer() {
		return Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-002", fmt.Sprintf("expected a scalar, got container shape %T", raw))
	}
	return k, norm, nil
}

// KindFor infers the primitive kind of raw.
func (r *Registry) KindFor(raw any) (Kind, error) {
	k, _, err := r.Infer(raw)
	return k, err
}

// ShapeKind returns the container kind whose representation is the dynamic
// type of source.
func (r *Registry) ShapeKind(source any) (Kind, bool) {
	if source == nil {
		return Invalid, false
	}
	k, ok := r.byRep[reflect.TypeOf(source)]
	if !ok || !k.IsContainer() {
		return Invalid, false
	}
	return k, true
}

func normalize(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v)
	case float32:
		return float64(v), nil
	default:
		return raw, nil
	}
}

func uintToInt64(v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, errs.New(errs.KindType, "GRP-TYPE-003", fmt.Sprintf("integer %d overflows int64", v))
	}
	return int64(v), nil
}

// isCollection reports whether raw is any slice (other than []byte), array or map.
func isCollection(raw any) bool {
	if raw == nil {
		return false
	}
	if _, ok := raw.([]byte); ok {
		return false
	}
	switch reflect.TypeOf(raw).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// IsCollection reports whether raw is a native collection rather than a scalar.
func IsCollection(raw any) bool { return isCollection(raw) }
