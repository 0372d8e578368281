package hashing

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CID returns a CIDv1 using the "raw" multicodec and the multihash of h.
func (h Hash) CID() (cid.Cid, error) {
	if h.IsZero() {
		return cid.Undef, errors.New("cannot derive CID from undefined hash")
	}
	code, ok := multihashCode(h.alg)
	if !ok {
		return cid.Undef, fmt.Errorf("unsupported hash algorithm: %q", h.alg)
	}
	mh, err := multihash.Encode(h.digest[:], code)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(mh)), nil
}

// CIDString is like CID but returns "" when no CID can be derived.
func (h Hash) CIDString() string {
	c, err := h.CID()
	if err != nil {
		return ""
	}
	return c.String()
}

// FromCID recovers the Hash carried by a CID produced by Hash.CID.
func FromCID(c cid.Cid) (Hash, error) {
	if !c.Defined() {
		return Hash{}, errors.New("undefined CID")
	}
	dec, err := multihash.Decode(c.Hash())
	if err != nil {
		return Hash{}, err
	}
	alg, ok := algorithmForCode(dec.Code)
	if !ok {
		return Hash{}, fmt.Errorf("unsupported multihash code 0x%x", dec.Code)
	}
	return FromDigest(alg, dec.Digest)
}

// ParseCID decodes a CID string and recovers its Hash.
func ParseCID(s string) (Hash, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return Hash{}, err
	}
	return FromCID(c)
}
