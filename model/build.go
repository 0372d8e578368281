package model

import (
	"forme.dev/groups/base"
	"forme.dev/groups/hashing"
	"forme.dev/groups/registry"
	"forme.dev/groups/schema"
)

func FromValue(v base.Value, hasher hashing.Hasher) ValueView {
	h := v.HashWith(hasher)
	return ValueView{
		Kind:  v.Kind().String(),
		Value: v.Raw(),
		Hash:  h.String(),
		CID:   h.CIDString(),
	}
}

func FromContainer(c *base.Container) ContainerView {
	root := c.ContentHash()
	items := c.Items()
	out := ContainerView{
		Kind:      c.Kind().String(),
		Algorithm: string(c.Hasher().Algorithm()),
		Root:      root.String(),
		CID:       root.CIDString(),
		Depth:     c.Tree().Depth(),
		Items:     make([]ValueView, 0, len(items)),
	}
	for _, v := range items {
		out.Items = append(out.Items, FromValue(v, c.Hasher()))
	}
	return out
}

func hasherFor(name string) (hashing.Hasher, error) {
	alg, err := hashing.ParseAlgorithm(name)
	if err != nil {
		return hashing.Hasher{}, NewError(ErrInvalidRequest, err.Error())
	}
	hs, err := hashing.NewHasher(alg)
	if err != nil {
		return hashing.Hasher{}, NewError(ErrInvalidRequest, err.Error())
	}
	return hs, nil
}

func buildContainer(reg *registry.Registry, req HashRequest, hs hashing.Hasher) (*base.Container, error) {
	opts := []base.Option{base.WithHasher(hs)}
	if req.Kind != "" {
		opts = append(opts, base.WithKindAlias(req.Kind))
	}
	c, err := base.NewContainer(reg, req.Data, opts...)
	if err != nil {
		return nil, MapErr(err)
	}
	return c, nil
}

// Hash computes the content identity of req.Data: a ValueView for a scalar,
// a ContainerView for a collection.
func Hash(reg *registry.Registry, req HashRequest) (*HashResponse, error) {
	hs, err := hasherFor(req.Algorithm)
	if err != nil {
		return nil, err
	}
	if registry.IsCollection(req.Data) {
		c, err := buildContainer(reg, req, hs)
		if err != nil {
			return nil, err
		}
		view := FromContainer(c)
		return &HashResponse{Container: &view}, nil
	}
	if req.Kind != "" {
		return nil, NewError(ErrInvalidRequest, "kind applies only to collections")
	}
	v, err := base.NewValue(reg, req.Data)
	if err != nil {
		return nil, MapErr(err)
	}
	view := FromValue(v, hs)
	return &HashResponse{Value: &view}, nil
}

// Membership reports whether req.Candidate is a leaf of the container built
// from req.Data. For an item, the result also carries its inclusion proof.
func Membership(reg *registry.Registry, req MembershipRequest) (*MembershipResult, error) {
	hs, err := hasherFor(req.Algorithm)
	if err != nil {
		return nil, err
	}
	if !registry.IsCollection(req.Data) {
		return nil, NewError(ErrInvalidRequest, "membership requires a collection")
	}
	cand, err := hashing.Parse(hs.Algorithm(), req.Candidate)
	if err != nil {
		return nil, NewError(ErrInvalidHash, err.Error())
	}
	c, err := buildContainer(reg, req.HashRequest, hs)
	if err != nil {
		return nil, err
	}

	res := &MembershipResult{
		Member: c.VerifyMembership(cand),
		Root:   c.ContentHash().String(),
		Index:  -1,
	}
	if i, ok := c.Tree().IndexOf(cand); ok {
		res.Index = i
		if i < c.Len() {
			p, err := c.Proof(i)
			if err != nil {
				return nil, NewError(ErrInternal, err.Error())
			}
			for _, s := range p.Steps {
				res.Proof = append(res.Proof, ProofStep{Sibling: s.Sibling.String(), Left: s.Left})
			}
		}
	}
	return res, nil
}

// VerifySchema checks s against reg. It never fails; problems are reported
// in the result.
func VerifySchema(reg *registry.Registry, s *schema.Schema) Verification {
	ok, msg := s.Verify(reg)
	leaves, err := s.Leaves(reg)
	if err != nil {
		return Verification{Valid: false, Message: err.Error(), Leaves: []string{}}
	}
	return Verification{Valid: ok, Message: msg, Leaves: leaves}
}

// Kinds describes every kind in reg in declaration order.
func Kinds(reg *registry.Registry) []KindView {
	out := make([]KindView, 0, len(registry.Kinds()))
	for _, k := range registry.Kinds() {
		s, _ := reg.Spec(k)
		out = append(out, KindView{
			Name:     k.String(),
			Reserved: s.Reserved,
			Brackets: s.Open + s.Close,
			Aliases:  append([]string(nil), s.Aliases...),
		})
	}
	return out
}
