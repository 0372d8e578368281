package base

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"forme.dev/groups/errs"
	"forme.dev/groups/hashing"
	"forme.dev/groups/merkle"
	"forme.dev/groups/registry"
	"forme.dev/groups/shape"
)

// Container is an immutable, flat collection of Values.
//
// Map containers store their entries as a flattened key, value, key, value
// sequence in insertion order. Set containers hold distinct items ordered by
// content hash.
//
// The container hash is the root of a Merkle tree over the item hashes
// followed by one trailing hash of the kind's reserved marker.
type Container struct {
	kind   registry.Kind
	spec   registry.Spec
	items  []Value
	hashes []hashing.Hash
	hasher hashing.Hasher
	tree   *merkle.Tree
}

type options struct {
	kind      registry.Kind
	kindAlias string
	hasher    hashing.Hasher
}

// Option configures NewContainer.
type Option func(*options)

// WithKind declares the container kind instead of inferring it from the
// source shape.
func WithKind(k registry.Kind) Option {
	return func(o *options) { o.kind = k }
}

// WithKindAlias declares the container kind by alias, resolved through the
// registry passed to NewContainer.
func WithKindAlias(alias string) Option {
	return func(o *options) { o.kindAlias = alias }
}

// WithHasher selects the hash algorithm for items and tree nodes.
func WithHasher(h hashing.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

// NewContainer builds a container from a native collection.
//
// Accepted sources are []any, shape.Tuple, shape.Set, shape.FrozenSet,
// shape.Map, map[string]any (keys sorted) and any other slice or array of
// scalars. An element that is itself a collection or a Container fails with a
// NestedContainer error.
func NewContainer(reg *registry.Registry, source any, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	shapeKind, elems, err := elements(reg, source)
	if err != nil {
		return nil, err
	}

	kind := shapeKind
	switch {
	case o.kindAlias != "":
		k, err := reg.Resolve(o.kindAlias)
		if err != nil {
			return nil, err
		}
		if !k.IsContainer() {
			return nil, errs.New(errs.KindType, "GRP-TYPE-005", fmt.Sprintf("%q names primitive kind %s, not a container kind", o.kindAlias, k))
		}
		kind = k
	case o.kind != registry.Invalid:
		if !o.kind.IsContainer() {
			return nil, errs.New(errs.KindType, "GRP-TYPE-005", fmt.Sprintf("%s is not a container kind", o.kind))
		}
		kind = o.kind
	}

	items := make([]Value, len(elems))
	for i, e := range elems {
		if isNested(e) {
			return nil, errs.New(errs.KindNested, "GRP-NEST-001", fmt.Sprintf("item %d is a nested collection %T; containers hold scalars only", i, e))
		}
		v, err := NewValue(reg, e)
		if err != nil {
			return nil, errs.Wrap(errs.KindType, errs.RuleID(err), fmt.Sprintf("item %d: %v", i, err), err)
		}
		items[i] = v
	}

	if kind == registry.Map && len(items)%2 != 0 {
		return nil, errs.New(errs.KindType, "GRP-TYPE-006", fmt.Sprintf("map container needs key/value pairs, got %d items", len(items)))
	}

	spec, _ := reg.Spec(kind)
	c := &Container{kind: kind, spec: spec, hasher: o.hasher}
	c.items, c.hashes = c.hashItems(items)

	leaves := append(append([]hashing.Hash(nil), c.hashes...), c.hasher.SumString(spec.Reserved))
	c.tree = merkle.New(leaves, merkle.WithHasher(c.hasher))
	return c, nil
}

// MustContainer is like NewContainer but panics on error.
func MustContainer(reg *registry.Registry, source any, opts ...Option) *Container {
	c, err := NewContainer(reg, source, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Container) hashItems(items []Value) ([]Value, []hashing.Hash) {
	hashes := make([]hashing.Hash, len(items))
	for i, v := range items {
		hashes[i] = v.HashWith(c.hasher)
	}
	if !c.kind.IsSet() {
		return items, hashes
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return hashes[idx[a]].Compare(hashes[idx[b]]) < 0 })

	outItems := make([]Value, 0, len(items))
	outHashes := make([]hashing.Hash, 0, len(items))
	for _, i := range idx {
		if n := len(outHashes); n > 0 && outHashes[n-1] == hashes[i] {
			continue
		}
		outItems = append(outItems, items[i])
		outHashes = append(outHashes, hashes[i])
	}
	return outItems, outHashes
}

func elements(reg *registry.Registry, source any) (registry.Kind, []any, error) {
	switch s := source.(type) {
	case nil:
		return registry.Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-004", "container source is nil")
	case shape.Map:
		out := make([]any, 0, 2*len(s))
		for _, p := range s {
			out = append(out, p.Key, p.Value)
		}
		return registry.Map, out, nil
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, 0, 2*len(s))
		for _, k := range keys {
			out = append(out, k, s[k])
		}
		return registry.Map, out, nil
	case []byte:
		return registry.Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-004", "expected a collection, got a byte string")
	}

	if k, ok := reg.ShapeKind(source); ok {
		rv := reflect.ValueOf(source)
		return k, sliceElems(rv), nil
	}

	rv := reflect.ValueOf(source)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return registry.List, sliceElems(rv), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return registry.Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-004", fmt.Sprintf("map source %T must have string keys", source))
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		out := make([]any, 0, 2*len(keys))
		for _, k := range keys {
			out = append(out, k.Interface(), rv.MapIndex(k).Interface())
		}
		return registry.Map, out, nil
	}
	return registry.Invalid, nil, errs.New(errs.KindType, "GRP-TYPE-004", fmt.Sprintf("expected a collection, got %T", source))
}

func sliceElems(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func isNested(e any) bool {
	switch e.(type) {
	case Container, *Container:
		return true
	}
	return registry.IsCollection(e)
}

func (c *Container) Kind() registry.Kind { return c.kind }

func (c *Container) Len() int { return len(c.items) }

// Items returns a copy of the item sequence.
func (c *Container) Items() []Value { return append([]Value(nil), c.items...) }

// Hasher returns the hasher used for items and tree nodes.
func (c *Container) Hasher() hashing.Hasher { return c.hasher }

// Tree returns the container's Merkle tree.
func (c *Container) Tree() *merkle.Tree { return c.tree }

// ContentHash returns the Merkle root.
func (c *Container) ContentHash() hashing.Hash { return c.tree.Root() }

// ItemHashes returns the item hashes in item order.
func (c *Container) ItemHashes() []hashing.Hash {
	return append([]hashing.Hash(nil), c.hashes...)
}

// VerifyMembership reports whether candidate equals one of the tree's leaf
// hashes, including the trailing kind tag. It is a presence check, not an
// inclusion proof against the root.
func (c *Container) VerifyMembership(candidate hashing.Hash) bool {
	return c.tree.Contains(candidate)
}

// Proof returns the inclusion proof for item i.
func (c *Container) Proof(i int) (merkle.Proof, error) {
	if i < 0 || i >= len(c.items) {
		return merkle.Proof{}, fmt.Errorf("item index %d out of range [0,%d)", i, len(c.items))
	}
	return c.tree.Proof(i)
}

// VerifyProof checks that leaf is authenticated by proof against the
// container hash.
func (c *Container) VerifyProof(leaf hashing.Hash, proof merkle.Proof) bool {
	return merkle.VerifyProof(c.ContentHash(), leaf, proof, c.hasher)
}

// Repackage reconstructs the native collection for the container kind: []any
// for lists, shape.Tuple, shape.Set, shape.FrozenSet, or shape.Map with
// entries in original order.
func (c *Container) Repackage() any {
	raws := make([]any, len(c.items))
	for i, v := range c.items {
		raws[i] = v.Raw()
	}
	switch c.kind {
	case registry.Tuple:
		return shape.Tuple(raws)
	case registry.Set:
		return shape.Set(raws)
	case registry.FrozenSet:
		return shape.FrozenSet(raws)
	case registry.Map:
		m := make(shape.Map, 0, len(raws)/2)
		for i := 0; i+1 < len(raws); i += 2 {
			m = append(m, shape.Pair{Key: raws[i], Value: raws[i+1]})
		}
		return m
	default:
		return raws
	}
}

// Equal reports whether c and other have the same kind and item sequence.
func (c *Container) Equal(other *Container) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.kind != other.kind || len(c.items) != len(other.items) {
		return false
	}
	for i := range c.items {
		if !c.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

func (c *Container) String() string {
	var b strings.Builder
	b.WriteString(c.kind.String())
	b.WriteString(c.spec.Open)
	for i, v := range c.items {
		if i > 0 {
			if c.kind == registry.Map && i%2 == 1 {
				b.WriteString(": ")
			} else {
				b.WriteString(c.spec.Separator + " ")
			}
		}
		b.WriteString(v.String())
	}
	b.WriteString(c.spec.Close)
	return b.String()
}
