// Package hashing provides the fixed-size digests used as content identity
// for values, containers and Merkle tree nodes.
package hashing

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Size is the digest length in bytes for every supported algorithm.
const Size = 32

// Hash is a digest tagged with the algorithm that produced it.
//
// Hash values are comparable with == and ordered by Compare. The zero Hash is
// the undefined hash.
type Hash struct {
	alg    Algorithm
	digest [Size]byte
}

// Algorithm returns the algorithm that produced h.
func (h Hash) Algorithm() Algorithm { return h.alg }

// Bytes returns a copy of the raw digest.
func (h Hash) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h.digest[:])
	return out
}

func (h Hash) IsZero() bool { return h == Hash{} }

// String returns the lowercase hex digest.
func (h Hash) String() string {
	if h.IsZero() {
		return ""
	}
	return hex.EncodeToString(h.digest[:])
}

// Compare orders hashes by algorithm name, then by digest bytes.
func (h Hash) Compare(other Hash) int {
	if h.alg != other.alg {
		if h.alg < other.alg {
			return -1
		}
		return 1
	}
	return bytes.Compare(h.digest[:], other.digest[:])
}

// FromDigest builds a Hash from an existing digest.
func FromDigest(alg Algorithm, digest []byte) (Hash, error) {
	if _, ok := multihashCode(alg); !ok {
		return Hash{}, fmt.Errorf("unsupported hash algorithm: %q", alg)
	}
	if len(digest) != Size {
		return Hash{}, fmt.Errorf("digest must be %d bytes, got %d", Size, len(digest))
	}
	h := Hash{alg: alg}
	copy(h.digest[:], digest)
	return h, nil
}

// Parse decodes a hex digest produced by Hash.String.
func Parse(alg Algorithm, s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hex digest: %w", err)
	}
	return FromDigest(alg, b)
}

// Hasher computes digests with a fixed algorithm. The zero Hasher uses
// DefaultAlgorithm.
type Hasher struct {
	alg Algorithm
}

// NewHasher returns a Hasher for alg.
func NewHasher(alg Algorithm) (Hasher, error) {
	if _, ok := multihashCode(alg); !ok {
		return Hasher{}, fmt.Errorf("unsupported hash algorithm: %q", alg)
	}
	return Hasher{alg: alg}, nil
}

func (hs Hasher) Algorithm() Algorithm {
	if hs.alg == "" {
		return DefaultAlgorithm
	}
	return hs.alg
}

// Sum returns the digest of data.
func (hs Hasher) Sum(data []byte) Hash {
	alg := hs.Algorithm()
	d, err := digestFor(alg, data)
	if err != nil {
		// NewHasher rejects unknown algorithms, so this is unreachable.
		return Hash{}
	}
	return Hash{alg: alg, digest: d}
}

func (hs Hasher) SumString(s string) Hash { return hs.Sum([]byte(s)) }

// Pair returns the digest of the concatenated digests of a and b.
func (hs Hasher) Pair(a, b Hash) Hash {
	buf := make([]byte, 0, 2*Size)
	buf = append(buf, a.digest[:]...)
	buf = append(buf, b.digest[:]...)
	return hs.Sum(buf)
}

// Sum returns the SHA-256 Hash of data.
func Sum(data []byte) Hash { return Hasher{}.Sum(data) }

// SumString returns the SHA-256 Hash of s.
func SumString(s string) Hash { return Hasher{}.SumString(s) }
